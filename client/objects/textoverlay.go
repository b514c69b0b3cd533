package objects

import (
	"image/color"
	"strings"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// TextOverlayObject draws a line of upper case text centered on the screen,
// shifted vertically by offsetY.
type TextOverlayObject struct {
	*BaseObject

	text    string
	face    font.Face
	offsetY float64
}

func NewTextOverlayObject(id string, text string, face font.Face, offsetY float64) *TextOverlayObject {
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id),
		text:       text,
		face:       face,
		offsetY:    offsetY,
	}
}

func (o *TextOverlayObject) SetText(text string) {
	o.text = text
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	t := strings.ToUpper(o.text)
	f := o.face
	if f == nil {
		f = fonts.TTFLargeFont
	}
	bounds, _ := font.BoundString(f, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(screen.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2+o.offsetY)
	op.ColorScale.ScaleWithColor(color.White)
	text.DrawWithOptions(screen, t, f, op)
}

package scenes

import (
	"context"
	"fmt"
	"image/color"

	"github.com/cbodonnell/snake/client/fonts"
	"github.com/cbodonnell/snake/client/objects"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/state"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
)

type MenuScene struct {
	*BaseScene

	onStart      func()
	stateManager state.StateManager
	ui           *ebitenui.UI

	// highScore and previousScore are the values currently rendered.
	highScore     int
	previousScore int
}

type MenuSceneOptions struct {
	// OnStart is called when the start game button is pressed.
	OnStart func()
	// StateManager provides the scores shown on the menu.
	StateManager state.StateManager
}

var _ Scene = &MenuScene{}

func NewMenuScene(opts MenuSceneOptions) (Scene, error) {
	if opts.OnStart == nil {
		return nil, fmt.Errorf("start handler is required")
	}
	if opts.StateManager == nil {
		return nil, fmt.Errorf("state manager is required")
	}
	return &MenuScene{
		BaseScene:    NewBaseScene(objects.NewBaseObject("menu-root")),
		onStart:      opts.OnStart,
		stateManager: opts.StateManager,
	}, nil
}

func (s *MenuScene) Init() error {
	s.refreshScores()
	s.renderUI()
	return s.BaseScene.Init()
}

// refreshScores copies the scores from the latest snapshot and reports
// whether they changed since the last render.
func (s *MenuScene) refreshScores() bool {
	snapshot, err := s.stateManager.Get(context.Background())
	if err != nil {
		log.Error("Failed to get game state: %v", err)
		return false
	}
	changed := snapshot.HighScore != s.highScore || snapshot.PreviousScore != s.previousScore
	s.highScore = snapshot.HighScore
	s.previousScore = snapshot.PreviousScore
	return changed
}

func (s *MenuScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 80, G: 170, B: 80, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 65, G: 135, B: 65, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 50, G: 100, B: 50, A: 255}),
	}

	fontFace := fonts.TTFNormalFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    120,
				Left:   120,
				Right:  120,
				Bottom: 90,
			}))),
	)

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("Snake", fonts.TitleFont, color.NRGBA{R: 254, G: 255, B: 255, A: 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	for _, line := range []string{
		fmt.Sprintf("Best score: %d", s.highScore),
		fmt.Sprintf("Previous score: %d", s.previousScore),
	} {
		rootContainer.AddChild(widget.NewText(
			widget.TextOpts.Text(line, fontFace, color.NRGBA{R: 200, G: 200, B: 200, A: 255}),
			widget.TextOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
				}),
			),
		))
	}

	button := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
		widget.ButtonOpts.Image(buttonImage),
		widget.ButtonOpts.Text("Start", fontFace, &widget.ButtonTextColor{
			Idle:     color.NRGBA{254, 255, 255, 255},
			Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		}),
		widget.ButtonOpts.TextPadding(widget.Insets{
			Left:   30,
			Right:  30,
			Top:    5,
			Bottom: 5,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			s.onStart()
		}),
	)
	rootContainer.AddChild(button)

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *MenuScene) Update() error {
	// the high score may arrive from the store after the menu is shown
	if s.refreshScores() {
		s.renderUI()
	}
	s.ui.Update()
	return s.BaseScene.Update()
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cbodonnell/snake/client/game"
	"github.com/cbodonnell/snake/pkg/client/local"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	store := flag.String("store", string(scores.BackendSQLite), "score store: memory, sqlite, postgres, firestore or remote")
	seed := flag.Int64("seed", 0, "food placement seed, 0 for random")
	debug := flag.Bool("debug", false, "show the debug overlay")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := scores.Backend(*store)
	repository, err := scores.NewRepository(ctx, scores.RepositoryOptionsFromEnv(backend))
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	log.Info("Using %s score store", backend)

	client, err := local.NewClient(ctx, local.NewClientOptions{
		Repository: repository,
		Seed:       *seed,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create client: %v", err))
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := client.Close(closeCtx); err != nil {
			log.Error("Failed to close client: %v", err)
		}
	}()

	g, err := game.NewGame(game.NewGameOptions{
		Ctx:          ctx,
		Debug:        *debug,
		Engine:       client.Engine,
		EventQueue:   client.EventQueue,
		StateManager: client.StateManager,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Snake")
	if err := ebiten.RunGame(g); err != nil {
		log.Error("Failed to run game: %v", err)
	}
}

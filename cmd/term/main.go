package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cbodonnell/snake/client/audio"
	"github.com/cbodonnell/snake/client/term"
	"github.com/cbodonnell/snake/pkg/client/local"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/version"
	"github.com/gdamore/tcell/v2"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level")
	logFile := flag.String("log-file", "", "file to write logs to, logs are discarded if empty")
	store := flag.String("store", string(scores.BackendSQLite), "score store: memory, sqlite, postgres, firestore or remote")
	seed := flag.Int64("seed", 0, "food placement seed, 0 for random")
	sound := flag.Bool("sound", false, "play tones when eating and on game over")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	// the terminal belongs to the game, so logs never go to stdout
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			panic(fmt.Sprintf("Failed to open log file: %v", err))
		}
		defer f.Close()
		logOut = f
	}
	logger := log.New(logOut, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)

	log.Info("Starting terminal client version %s", version.Get())
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

	screen, err := tcell.NewScreen()
	if err != nil {
		panic(fmt.Sprintf("Failed to create screen: %v", err))
	}
	if err := screen.Init(); err != nil {
		panic(fmt.Sprintf("Failed to initialize screen: %v", err))
	}
	defer screen.Fini()

	var sounds term.Sounds = term.NoSounds{}
	if *sound {
		beepSounds, err := audio.NewBeepSounds()
		if err != nil {
			log.Warn("Sound disabled: %v", err)
		} else {
			defer beepSounds.Close()
			sounds = beepSounds
		}
	}

	app, err := term.NewApp(term.NewAppOptions{
		Screen:       screen,
		Engine:       client.Engine,
		StateManager: client.StateManager,
		EventQueue:   client.EventQueue,
		Sounds:       sounds,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create app: %v", err))
	}
	if err := app.Run(ctx); err != nil {
		log.Error("Terminal client stopped: %v", err)
	}
}

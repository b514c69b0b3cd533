package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/snake/pkg/api"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/scores"
	"github.com/cbodonnell/snake/pkg/version"
)

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	store := flag.String("store", string(scores.BackendSQLite), "score store: memory, sqlite, postgres or firestore")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting score server version %s", version.Get())
	ctx := context.Background()

	backend := scores.Backend(*store)
	if backend == scores.BackendRemote {
		panic("The score server cannot use the remote store")
	}
	repository, err := scores.NewRepository(ctx, scores.RepositoryOptionsFromEnv(backend))
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(ctx)
	log.Info("Using %s score store", backend)

	apiServerOpts := api.NewAPIServerOptions{
		Port:       *port,
		Repository: repository,
	}
	tlsCertFile := os.Getenv("SNAKE_API_TLS_CERT_FILE")
	tlsKeyFile := os.Getenv("SNAKE_API_TLS_KEY_FILE")
	if tlsCertFile != "" && tlsKeyFile != "" {
		apiServerOpts.TLS = &api.TLSConfig{
			CertFile: tlsCertFile,
			KeyFile:  tlsKeyFile,
		}
	}
	server := api.NewAPIServer(apiServerOpts)
	go server.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
}

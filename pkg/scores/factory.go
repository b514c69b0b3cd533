package scores

import (
	"context"
	"fmt"
	"os"

	"github.com/cbodonnell/snake/pkg/client/remote"
	"github.com/cbodonnell/snake/pkg/repositories"
)

type Backend string

const (
	BackendMemory    Backend = "memory"
	BackendSQLite    Backend = "sqlite"
	BackendPostgres  Backend = "postgres"
	BackendFirestore Backend = "firestore"
	BackendRemote    Backend = "remote"
)

// RepositoryOptions selects and configures a score repository.
// Only the fields for the chosen Backend are read.
type RepositoryOptions struct {
	Backend      Backend
	SQLitePath   string
	DatabaseURL  string
	Firestore    repositories.FirestoreOptions
	APIServerURL string
}

// NewRepository creates the repository for opts.Backend.
// The caller is responsible for calling Close() on the repository.
func NewRepository(ctx context.Context, opts RepositoryOptions) (repositories.Repository, error) {
	switch opts.Backend {
	case BackendMemory:
		return repositories.NewInMemoryRepository(), nil
	case BackendSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path must be set")
		}
		repository, err := repositories.NewSQLiteRepository(ctx, opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite repository: %v", err)
		}
		return repository, nil
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL must be set")
		}
		repository, err := repositories.NewPostgresRepository(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres repository: %v", err)
		}
		return repository, nil
	case BackendFirestore:
		repository, err := repositories.NewFirestoreRepository(ctx, opts.Firestore)
		if err != nil {
			return nil, fmt.Errorf("failed to create firestore repository: %v", err)
		}
		return repository, nil
	case BackendRemote:
		return remote.NewRemoteRepository(remote.NewRemoteRepositoryOptions{
			BaseURL: opts.APIServerURL,
		}), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", opts.Backend)
	}
}

const (
	DefaultSQLitePath = "snake.db"
)

// RepositoryOptionsFromEnv returns options for backend with connection
// details read from the environment:
//
//	SNAKE_SQLITE_PATH           sqlite database file (default snake.db)
//	SNAKE_DATABASE_URL          postgres connection string
//	SNAKE_FIREBASE_PROJECT_ID   firebase project
//	SNAKE_FIREBASE_CREDENTIALS  service account key file
//	SNAKE_API_URL               score server base URL
func RepositoryOptionsFromEnv(backend Backend) RepositoryOptions {
	sqlitePath := os.Getenv("SNAKE_SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = DefaultSQLitePath
	}
	return RepositoryOptions{
		Backend:     backend,
		SQLitePath:  sqlitePath,
		DatabaseURL: os.Getenv("SNAKE_DATABASE_URL"),
		Firestore: repositories.FirestoreOptions{
			ProjectID:       os.Getenv("SNAKE_FIREBASE_PROJECT_ID"),
			CredentialsFile: os.Getenv("SNAKE_FIREBASE_CREDENTIALS"),
		},
		APIServerURL: os.Getenv("SNAKE_API_URL"),
	}
}

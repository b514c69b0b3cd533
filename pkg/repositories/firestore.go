package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/repositories/models"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

var _ Repository = &FirestoreRepository{}

// FirestoreRepository stores each score as a document in a single collection.
type FirestoreRepository struct {
	client     *firestore.Client
	collection string
}

type FirestoreOptions struct {
	// ProjectID is the Firebase project. When empty it is read from the credentials.
	ProjectID string
	// CredentialsFile is a service account key file. When empty the
	// application default credentials are used.
	CredentialsFile string
	// Collection defaults to constants.ScoresCollection.
	Collection string
	// ClientOptions are appended after the credentials option.
	ClientOptions []option.ClientOption
}

func NewFirestoreRepository(ctx context.Context, opts FirestoreOptions) (*FirestoreRepository, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts.ClientOptions...)

	var cfg *firebase.Config
	if opts.ProjectID != "" {
		cfg = &firebase.Config{
			ProjectID: opts.ProjectID,
		}
	}

	app, err := firebase.NewApp(ctx, cfg, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %v", err)
	}

	collection := opts.Collection
	if collection == "" {
		collection = constants.ScoresCollection
	}

	return &FirestoreRepository{
		client:     client,
		collection: collection,
	}, nil
}

func (r *FirestoreRepository) Close(ctx context.Context) error {
	return r.client.Close()
}

func (r *FirestoreRepository) SaveScore(ctx context.Context, record *models.ScoreRecord) error {
	if _, _, err := r.client.Collection(r.collection).Add(ctx, record); err != nil {
		return fmt.Errorf("failed to add score document: %v", err)
	}
	return nil
}

func (r *FirestoreRepository) HighScore(ctx context.Context) (*models.ScoreRecord, error) {
	iter := r.client.Collection(r.collection).
		OrderBy("score", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, &ErrNotFound{}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query high score: %v", err)
	}

	record := &models.ScoreRecord{}
	if err := doc.DataTo(record); err != nil {
		return nil, fmt.Errorf("failed to decode score document %s: %v", doc.Ref.ID, err)
	}

	return record, nil
}

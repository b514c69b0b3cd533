package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/snake/pkg/api"
	"github.com/cbodonnell/snake/pkg/api/handlers"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/repositories/models"
)

const (
	DefaultAPIServerURL = "http://localhost:8080"
	// DefaultTimeout bounds each request to the score server.
	DefaultTimeout = 5 * time.Second
)

var _ repositories.Repository = &RemoteRepository{}

// RemoteRepository is a Repository backed by the score API server.
type RemoteRepository struct {
	baseURL string
	client  *http.Client
}

type NewRemoteRepositoryOptions struct {
	// BaseURL defaults to DefaultAPIServerURL.
	BaseURL string
	// Client defaults to an http.Client with DefaultTimeout.
	Client *http.Client
}

func NewRemoteRepository(opts NewRemoteRepositoryOptions) *RemoteRepository {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultAPIServerURL
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &RemoteRepository{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (r *RemoteRepository) Close(ctx context.Context) error {
	r.client.CloseIdleConnections()
	return nil
}

// SaveScore submits the record's score. The server assigns the timestamp.
func (r *RemoteRepository) SaveScore(ctx context.Context, record *models.ScoreRecord) error {
	body := bytes.NewBuffer(nil)
	if err := json.NewEncoder(body).Encode(&handlers.SubmitScoreRequestBody{Score: record.Score}); err != nil {
		return fmt.Errorf("failed to encode request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+api.ScoresPath, body)
	if err != nil {
		return fmt.Errorf("failed to create submit request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send submit request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to submit score: status: %s, body: %s", resp.Status, string(b))
	}

	return nil
}

func (r *RemoteRepository) HighScore(ctx context.Context) (*models.ScoreRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+api.HighScorePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create high score request: %v", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send high score request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get high score: status: %s, body: %s", resp.Status, string(b))
	}

	responsePayload := &handlers.HighScoreResponseBody{}
	if err := json.NewDecoder(resp.Body).Decode(responsePayload); err != nil {
		return nil, fmt.Errorf("failed to decode high score response: %v", err)
	}

	// the server reports an empty store as a zero timestamp
	if responsePayload.Timestamp == 0 {
		return nil, &repositories.ErrNotFound{}
	}

	return &models.ScoreRecord{
		Score:     responsePayload.Score,
		Timestamp: time.UnixMilli(responsePayload.Timestamp),
	}, nil
}

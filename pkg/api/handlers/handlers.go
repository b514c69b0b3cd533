package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/cbodonnell/snake/pkg/log"
	"github.com/cbodonnell/snake/pkg/repositories"
	"github.com/cbodonnell/snake/pkg/repositories/models"
)

// HighScoreResponseBody is the response body for the high score endpoint.
// Timestamp is in unix milliseconds and is zero when no score exists.
type HighScoreResponseBody struct {
	Score     int   `json:"score"`
	Timestamp int64 `json:"timestamp"`
}

// SubmitScoreRequestBody is the JSON request body for the submit endpoint.
// The endpoint also accepts a form encoded "score" value.
type SubmitScoreRequestBody struct {
	Score int `json:"score"`
}

// SubmitScoreResponseBody is the response body for the submit endpoint.
type SubmitScoreResponseBody struct {
	Score     int   `json:"score"`
	Timestamp int64 `json:"timestamp"`
}

// HandleGetHighScore responds with the highest recorded score.
func HandleGetHighScore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responsePayload := &HighScoreResponseBody{
			Score: constants.DefaultHighScore,
		}

		record, err := repository.HighScore(r.Context())
		if err != nil {
			if !repositories.IsNotFound(err) {
				log.Error("failed to get high score: %v", err)
				http.Error(w, "Failed to get high score", http.StatusInternalServerError)
				return
			}
		} else {
			responsePayload.Score = record.Score
			responsePayload.Timestamp = record.Timestamp.UnixMilli()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(responsePayload); err != nil {
			log.Error("failed to encode high score: %v", err)
			http.Error(w, "Failed to encode high score", http.StatusInternalServerError)
			return
		}
	}
}

// HandleSubmitScore appends a score record stamped with the server time.
func HandleSubmitScore(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		score, err := parseScore(r)
		if err != nil {
			http.Error(w, "Invalid score", http.StatusBadRequest)
			return
		}
		if score < 0 {
			http.Error(w, "Score must not be negative", http.StatusBadRequest)
			return
		}

		record := models.NewScoreRecord(score)
		if err := repository.SaveScore(r.Context(), record); err != nil {
			log.Error("failed to save score: %v", err)
			http.Error(w, "Failed to save score", http.StatusInternalServerError)
			return
		}
		log.Debug("Saved score %d", record.Score)

		responsePayload := &SubmitScoreResponseBody{
			Score:     record.Score,
			Timestamp: record.Timestamp.UnixMilli(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(responsePayload); err != nil {
			log.Error("failed to encode score: %v", err)
			return
		}
	}
}

// parseScore reads the score from a JSON body or from the "score" form value.
func parseScore(r *http.Request) (int, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		requestPayload := &SubmitScoreRequestBody{}
		if err := json.NewDecoder(r.Body).Decode(requestPayload); err != nil {
			return 0, err
		}
		return requestPayload.Score, nil
	}
	return strconv.Atoi(r.FormValue("score"))
}

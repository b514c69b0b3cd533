package models

import "time"

// ScoreRecord is one completed game. Records are append-only.
type ScoreRecord struct {
	Score     int       `json:"score" firestore:"score"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// NewScoreRecord returns a record for score stamped with the current time.
func NewScoreRecord(score int) *ScoreRecord {
	return &ScoreRecord{
		Score:     score,
		Timestamp: time.Now(),
	}
}

package models

import (
	"time"

	"github.com/jakob/vocabdrill/internal/level"
)

// Score is the persisted mastery state of one term. A term without a row
// counts as never tested at the lowest level. Scores are only ever
// overwritten, never deleted.
type Score struct {
	TermKey    string     `json:"term_key"`
	Language   string     `json:"language"`
	Level      string     `json:"level"`
	LastTested *time.Time `json:"last_tested"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ScoredTerm joins a term with its score and computed urgency for test
// session construction.
type ScoredTerm struct {
	Term    Term          `json:"term"`
	Score   Score         `json:"score"`
	Urgency level.Urgency `json:"urgency"`
}

// SyncState records the outcome of the last sheet synchronization.
type SyncState struct {
	Language  string    `json:"language"`
	TermCount int       `json:"term_count"`
	SyncedAt  time.Time `json:"synced_at"`
}

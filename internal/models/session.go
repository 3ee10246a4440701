package models

import "time"

// TestSession is one user's quiz progress. It lives in the session store
// only; nothing here is shared across users.
type TestSession struct {
	ID        string    `json:"id"`
	Language  string    `json:"language"`
	TermKeys  []string  `json:"term_keys"`
	Order     []int     `json:"order"`
	Correct   int       `json:"correct"`
	Wrong     int       `json:"wrong"`
	WrongKeys []string  `json:"wrong_keys"`
	ShowTerm  bool      `json:"show_term"`
	// ShuffledAt is the answer count when Order was last shuffled, so
	// re-renders of the first card of a round do not reshuffle.
	ShuffledAt int       `json:"shuffled_at"`
	StartedAt  time.Time `json:"started_at"`
}

// Position returns the index into Order of the card currently shown.
func (s *TestSession) Position() int {
	if len(s.TermKeys) == 0 {
		return 0
	}
	return (s.Correct + s.Wrong) % len(s.TermKeys)
}

// CurrentKey returns the term key of the card currently shown, or ""
// when the session is empty or its order has not been populated.
func (s *TestSession) CurrentKey() string {
	if len(s.TermKeys) == 0 || s.Position() >= len(s.Order) {
		return ""
	}
	return s.TermKeys[s.Order[s.Position()]]
}

// Answered returns how many answers have been recorded.
func (s *TestSession) Answered() int {
	return s.Correct + s.Wrong
}

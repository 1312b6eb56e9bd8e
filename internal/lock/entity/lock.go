package entity

import "time"

// Lock is a named password lock. Hash is the stored digest of the password,
// produced by Algorithm.
type Lock struct {
	ID        string    `json:"id"`
	Hash      string    `json:"hash"`
	Algorithm string    `json:"algorithm"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Outcome labels an unlock attempt.
type Outcome string

const (
	OutcomeUnlocked Outcome = "unlocked"
	OutcomeRejected Outcome = "rejected"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

func (o Outcome) String() string {
	return string(o)
}

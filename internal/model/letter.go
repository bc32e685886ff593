package model

import "time"

// LetterDirection selects the dispatch or receive register.
type LetterDirection string

const (
	LetterDispatch LetterDirection = "dispatch"
	LetterReceive  LetterDirection = "receive"
)

// Valid reports whether d names a known register.
func (d LetterDirection) Valid() bool {
	return d == LetterDispatch || d == LetterReceive
}

// Letter is an entry in the dispatch or receive register. Counterparty is the
// recipient of a dispatched letter or the sender of a received one.
type Letter struct {
	ID           int             `json:"id"`
	Direction    LetterDirection `json:"direction"`
	Date         Date            `json:"date"`
	Reference    string          `json:"reference"`
	Counterparty string          `json:"counterparty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LetterRequest is the payload for logging a letter.
type LetterRequest struct {
	Date         Date   `json:"date"`
	Reference    string `json:"reference" binding:"required,notblank,max=255"`
	Counterparty string `json:"counterparty" binding:"required,notblank,max=255"`
}

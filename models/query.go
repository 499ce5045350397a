package models

import "github.com/google/uuid"

// Query is a saved issue search shared between clients.
type Query struct {
	ID        uuid.UUID `json:"identifier"`
	AuthorID  int64     `json:"author"`
	Title     string    `json:"title"`
	Predicate string    `json:"predicate"`
}

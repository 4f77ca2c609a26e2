package models

import "time"

// Translation is one stored translated value for a single field of a single
// domain record. The (EntityType, EntityID, Field, Lang) tuple is a logical
// unique key; the store does not enforce it, so writers must clear conflicting
// rows before inserting.
type Translation struct {
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Field      string    `json:"field"`
	Lang       string    `json:"lang"`
	Value      string    `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Request is the transient unit of work handed to the engine: every
// translatable field of one entity instance with its original text.
type Request struct {
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Fields     map[string]string `json:"fields"`
}

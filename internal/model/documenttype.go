package model

import "time"

// DocumentType is a named classification for documents.
// SchemaDefinition is an opaque validation schema (JSON text); this service
// stores it but does not interpret it.
type DocumentType struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	SchemaDefinition string    `json:"schema_definition"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DocumentTypeUpdate is a sparse update payload; nil means "leave unchanged".
type DocumentTypeUpdate struct {
	Name             *string
	Description      *string
	SchemaDefinition *string
	IsActive         *bool
}

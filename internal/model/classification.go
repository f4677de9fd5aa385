package model

import "time"

// Tag is a flat label for documents. Declared in the schema with no exposed
// write path.
type Tag struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

// Topic organizes documents hierarchically. ParentTopicID is a nullable
// self-reference; cycles are not validated.
type Topic struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	ParentTopicID *string   `json:"parent_topic_id,omitempty"`
}

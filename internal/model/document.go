package model

import "time"

// Document represents a stored file plus its metadata record.
// ContentHash is the lowercase-hex SHA-256 of the exact bytes at StoragePath
// at creation time; it is never recomputed after upload.
type Document struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	FileType       string     `json:"file_type"`
	StoragePath    string     `json:"storage_path"`
	Size           int64      `json:"size"`
	ContentHash    string     `json:"content_hash"`
	DocumentTypeID *string    `json:"document_type_id,omitempty"`
	CreatedBy      string     `json:"created_by"`
	ModifiedBy     string     `json:"modified_by"`
	IsDeleted      bool       `json:"is_deleted"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Versions and Metadata are populated on single-document reads only.
	Versions []DocumentVersion  `json:"versions"`
	Metadata []DocumentMetadata `json:"metadata"`
}

// DocumentUpdate is a sparse update payload; nil means "leave unchanged".
// DocumentTypeID is three-state because the column is nullable: an explicit
// null clears the reference, which a plain pointer could not request.
// ModifiedBy is always required and recorded on every successful update.
type DocumentUpdate struct {
	Name           *string
	DocumentTypeID NullableString
	IsDeleted      *bool
	ModifiedBy     string
}

// DocumentVersion is a snapshot of a document's content at a point in time.
// There is no exposed write path yet; versions are read back with their
// document. Creating versions on re-upload is the intended extension point.
type DocumentVersion struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id"`
	VersionNumber int       `json:"version_number"`
	StoragePath   string    `json:"storage_path"`
	ContentHash   string    `json:"content_hash"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// DocumentMetadata is a typed key/value attached to a document.
// Read-only for now, like DocumentVersion.
type DocumentMetadata struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Key        string    `json:"key"`
	Value      string    `json:"value"`
	DataType   string    `json:"data_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

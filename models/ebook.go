package models

import (
	"time"

	"github.com/google/uuid"
)

// EBook is an uploaded source document. Rows are immutable after upload and
// only ever returned to the owning user.
type EBook struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Title    string `gorm:"size:255;not null" json:"title"` // original filename
	FileType string `gorm:"size:10;not null" json:"file_type"`
	FilePath string `gorm:"type:text;not null" json:"file_path"`

	// Truncated copy of the extracted text; omitted from list responses.
	ExtractedText string `gorm:"type:text" json:"extracted_text,omitempty"`
	WordCount     int    `json:"word_count"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

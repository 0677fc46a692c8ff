package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedQuestion is a single question/answer pair produced from an e-book.
type GeneratedQuestion struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	EBookID uuid.UUID `gorm:"type:uuid;not null;index" json:"ebook_id"`
	EBook   EBook     `gorm:"foreignKey:EBookID;constraint:OnDelete:CASCADE;" json:"-"`

	QuestionType string `gorm:"size:50;not null" json:"question_type"` // "MCQ", "Short Answer", ...
	Difficulty   string `gorm:"size:50" json:"difficulty"`
	Question     string `gorm:"type:text;not null" json:"question"`
	Answer       string `gorm:"type:text;not null" json:"answer"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	EBooks    []EBook             `json:"-"`
	Questions []GeneratedQuestion `json:"-"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact message status values.
const (
	MessageStatusNew     = "new"
	MessageStatusRead    = "read"
	MessageStatusReplied = "replied"
)

// ContactMessage is a submission from the public contact form.
// Reference is handed back to the sender as a ticket identifier.
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Reference uuid.UUID `json:"reference" gorm:"type:char(36);uniqueIndex"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Subject   string    `json:"subject" gorm:"size:255"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"size:50;default:'new';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

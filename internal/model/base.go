package model

import (
	"time"
)

// BaseModel shared timestamps embedded by every table
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// AuditModel timestamps plus the user that created the row
type AuditModel struct {
	BaseModel
	CreatedBy *uint `json:"createdBy,omitempty"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel carries the uuid primary key and timestamps shared by all tables.
// The database generates ids, so inserts never need to set them.
type BaseModel struct {
	ID        string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

package model

import "time"

// Category groups products in the catalog.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryWithCount carries a category plus the number of products in it.
type CategoryWithCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}

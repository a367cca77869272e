package models

import "time"

const ItemTable = "rw_items"
const CategoryTable = "rw_categories"

type Category struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Item struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Title       string  `gorm:"size:200;not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	CategoryID  *string `gorm:"type:uuid;index" json:"categoryId,omitempty"`
	OwnerID     string  `gorm:"type:uuid;index;not null" json:"ownerId"`
	Size        string  `gorm:"size:40" json:"size,omitempty"`
	Brand       string  `gorm:"size:120" json:"brand,omitempty"`
	Condition   string  `gorm:"size:60;not null" json:"condition"`

	// IsAvailable flips to false while an accepted exchange holds the item.
	IsAvailable bool `gorm:"not null;default:true" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return CategoryTable }
func (Item) TableName() string     { return ItemTable }

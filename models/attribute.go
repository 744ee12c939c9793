package models

import "time"

// Attribute holds the columns shared by user-owned recipe attributes
type Attribute struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	UserID    uint   `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Base exposes the shared columns of an embedding model
func (a *Attribute) Base() *Attribute {
	return a
}

func (a Attribute) String() string {
	return a.Name
}

// AttributeModel is implemented by pointers to the attribute models
// (*Tag, *Ingredient). It lets storage and services share one implementation.
type AttributeModel[T any] interface {
	*T
	Base() *Attribute
}

// Tag labels recipes, e.g. "Vegan" or "Dessert"
type Tag struct {
	Attribute
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Ingredient is a component a recipe can list
type Ingredient struct {
	Attribute
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

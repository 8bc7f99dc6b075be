// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry (cake, pastry, beverage...).
type Product struct {
	ID          uuid.UUID
	Name        string
	Price       float64
	Description string
	Category    string // Also names the directory the product image is stored under.
	ImagePath   string // Public path of the uploaded image, e.g. "/images/cakes/foret-noire.jpg".
	OrderCount  int    // Number of times the product was ordered. Never decreases.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

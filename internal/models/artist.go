package models

import "time"

// Artist is a performer in the catalog.
type Artist struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Bio              string    `json:"bio,omitempty" db:"bio"`
	ImageURL         string    `json:"image_url,omitempty" db:"image_url"`
	Region           string    `json:"region,omitempty" db:"region"`
	Genre            string    `json:"genre,omitempty" db:"genre"`
	MonthlyListeners int64     `json:"monthly_listeners" db:"monthly_listeners"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"
)

// Business is the tenant owning draws, sales and results.
// The ID is the subject of the bearer token issued for the shop.
type Business struct {
	ID                string    `bson:"_id" json:"id"`
	Name              string    `bson:"name" json:"name"`
	LogoURL           string    `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	CommissionPercent float64   `bson:"commissionPercent" json:"commissionPercent"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BusinessRequest holds the editable business profile fields
type BusinessRequest struct {
	Name              string  `json:"name" binding:"required"`
	LogoURL           string  `json:"logoUrl" binding:"omitempty,url"`
	CommissionPercent float64 `json:"commissionPercent" binding:"gte=0,lte=100"`
}

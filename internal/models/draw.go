package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinDigits = 1
	MaxDigits = 5
)

// Draw represents a recurring lottery product sold by a business
type Draw struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID      string             `bson:"businessId" json:"businessId"`
	Name            string             `bson:"name" json:"name"`
	NumberOfDigits  int                `bson:"numberOfDigits" json:"numberOfDigits"`
	CostPerFraction float64            `bson:"costPerFraction" json:"costPerFraction"`
	ScheduleList    []string           `bson:"scheduleList" json:"scheduleList"` // e.g. "01:00 PM", kept in entry order
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DrawRequest is the payload for creating or updating a draw
type DrawRequest struct {
	Name            string   `json:"name" binding:"required"`
	NumberOfDigits  int      `json:"numberOfDigits" binding:"required,min=1,max=5"`
	CostPerFraction float64  `json:"costPerFraction" binding:"required,gt=0"`
	ScheduleList    []string `json:"scheduleList" binding:"required,min=1,dive,required"`
}

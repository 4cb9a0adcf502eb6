package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WinningNumbers holds the three prize positions, each zero padded to the draw's digit count
type WinningNumbers struct {
	First  string `bson:"first" json:"first" binding:"required,digits"`
	Second string `bson:"second" json:"second" binding:"required,digits"`
	Third  string `bson:"third" json:"third" binding:"required,digits"`
}

// Result is the officially recorded outcome of one draw, date and schedule
type Result struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID     string             `bson:"businessId" json:"businessId"`
	DrawID         primitive.ObjectID `bson:"drawId" json:"drawId"`
	Date           string             `bson:"date" json:"date"` // YYYY-MM-DD, calendar day in the configured time zone
	ScheduleLabel  string             `bson:"scheduleLabel" json:"scheduleLabel"`
	ScheduleSlug   string             `bson:"scheduleSlug" json:"-"`
	WinningNumbers WinningNumbers     `bson:"winningNumbers" json:"winningNumbers"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ResultRequest is the payload for creating or updating a result
type ResultRequest struct {
	DrawID         string         `json:"drawId" binding:"required"`
	Date           string         `json:"date" binding:"required,isodate"`
	ScheduleLabel  string         `json:"scheduleLabel" binding:"required"`
	WinningNumbers WinningNumbers `json:"winningNumbers" binding:"required"`
}

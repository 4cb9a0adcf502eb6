package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PayoutState is the lifecycle state of a payout record
type PayoutState string

const (
	PayoutStateUnpaid   PayoutState = "UNPAID"
	PayoutStatePaid     PayoutState = "PAID"
	PayoutStateReversed PayoutState = "REVERSED"
)

// PayoutStatus is the paid/unpaid record for one (result, ticket) pair.
// Key is the document _id, so at most one record exists per pair.
type PayoutStatus struct {
	Key           string             `bson:"_id" json:"key"`
	BusinessID    string             `bson:"businessId" json:"businessId"`
	ResultID      primitive.ObjectID `bson:"resultId" json:"resultId"`
	DrawID        primitive.ObjectID `bson:"drawId" json:"drawId"`
	Date          string             `bson:"date" json:"date"`
	ScheduleLabel string             `bson:"scheduleLabel" json:"scheduleLabel"`
	ScheduleSlug  string             `bson:"scheduleSlug" json:"-"`
	TicketID      string             `bson:"ticketId" json:"ticketId"`
	Status        PayoutState        `bson:"status" json:"status"`
	Paid          bool               `bson:"paid" json:"paid"`
	PaidAt        time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	ReversedAt    time.Time          `bson:"reversedAt,omitempty" json:"reversedAt,omitempty"`
	TotalWin      int64              `bson:"totalWin" json:"totalWin"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketIndex maps a normalized ticket id to the sale that owns it, across all businesses
type TicketIndex struct {
	TicketID   string             `bson:"_id" json:"ticketId"`
	BusinessID string             `bson:"businessId" json:"businessId"`
	SaleID     primitive.ObjectID `bson:"saleId" json:"saleId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale represents one customer transaction (a ticket)
type Sale struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	BusinessID     string             `bson:"businessId" json:"businessId"`
	TicketID       string             `bson:"ticketId" json:"ticketId"`
	DrawID         primitive.ObjectID `bson:"drawId" json:"drawId"`
	ScheduleLabels []string           `bson:"scheduleLabels" json:"scheduleLabels"`
	ScheduleSlugs  []string           `bson:"scheduleSlugs" json:"-"` // query key, derived from ScheduleLabels
	Lines          []SaleLine         `bson:"lines" json:"lines"`
	TotalCost      float64            `bson:"totalCost" json:"totalCost"`
	ClientName     string             `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ClientPhone    string             `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SaleLine is a single number played on a ticket.
// Number is stored zero padded to the draw's digit count.
type SaleLine struct {
	Number   string `bson:"number" json:"number" binding:"required,digits"`
	Quantity int    `bson:"quantity" json:"quantity" binding:"gt=0"`
}

// SaleRequest is the payload for creating or updating a sale
type SaleRequest struct {
	DrawID         string     `json:"drawId" binding:"required"`
	ScheduleLabels []string   `json:"scheduleLabels" binding:"required,min=1,dive,required"`
	Lines          []SaleLine `json:"lines" binding:"required,min=1,dive"`
	ClientName     string     `json:"clientName" binding:"max=120"`
	ClientPhone    string     `json:"clientPhone" binding:"max=40"`
}

// PublicTicket is the subset of a sale that anyone holding the ticket id may see
type PublicTicket struct {
	TicketID       string     `json:"ticketId"`
	BusinessName   string     `json:"businessName"`
	LogoURL        string     `json:"logoUrl,omitempty"`
	DrawName       string     `json:"drawName"`
	ScheduleLabels []string   `json:"scheduleLabels"`
	Lines          []SaleLine `json:"lines"`
	TotalCost      float64    `json:"totalCost"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// saleLineDoc accepts both the current and the legacy (numero/fraccion) line shape.
type saleLineDoc struct {
	Number   bson.RawValue `bson:"number"`
	Quantity bson.RawValue `bson:"quantity"`
	Numero   bson.RawValue `bson:"numero"`
	Fraccion bson.RawValue `bson:"fraccion"`
}

// UnmarshalBSON normalises stored lines into SaleLine regardless of the shape they were written in.
func (l *SaleLine) UnmarshalBSON(data []byte) error {
	var doc saleLineDoc
	if err := bson.Unmarshal(data, &doc); err != nil {
		return err
	}
	number := doc.Number
	if number.Type == 0 {
		number = doc.Numero
	}
	quantity := doc.Quantity
	if quantity.Type == 0 {
		quantity = doc.Fraccion
	}
	n, err := rawToString(number)
	if err != nil {
		return fmt.Errorf("sale line number: %w", err)
	}
	q, err := rawToInt(quantity)
	if err != nil {
		return fmt.Errorf("sale line quantity: %w", err)
	}
	l.Number = n
	l.Quantity = q
	return nil
}

// UnmarshalJSON mirrors UnmarshalBSON for request bodies.
func (l *SaleLine) UnmarshalJSON(data []byte) error {
	var doc struct {
		Number   interface{} `json:"number"`
		Quantity interface{} `json:"quantity"`
		Numero   interface{} `json:"numero"`
		Fraccion interface{} `json:"fraccion"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	number := doc.Number
	if number == nil {
		number = doc.Numero
	}
	quantity := doc.Quantity
	if quantity == nil {
		quantity = doc.Fraccion
	}
	switch v := number.(type) {
	case nil:
		l.Number = ""
	case string:
		l.Number = strings.TrimSpace(v)
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("sale line number %v is not a whole number", v)
		}
		l.Number = strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Errorf("sale line number has unsupported type %T", number)
	}
	switch v := quantity.(type) {
	case nil:
		l.Quantity = 0
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("sale line quantity %v is not a whole number", v)
		}
		l.Quantity = int(v)
	case string:
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("sale line quantity %q is not a number", v)
		}
		l.Quantity = q
	default:
		return fmt.Errorf("sale line quantity has unsupported type %T", quantity)
	}
	return nil
}

func rawToString(v bson.RawValue) (string, error) {
	switch v.Type {
	case 0, bsontype.Null:
		return "", nil
	case bsontype.String:
		return strings.TrimSpace(v.StringValue()), nil
	case bsontype.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10), nil
	case bsontype.Int64:
		return strconv.FormatInt(v.Int64(), 10), nil
	case bsontype.Double:
		return strconv.FormatInt(int64(v.Double()), 10), nil
	}
	return "", fmt.Errorf("unsupported bson type %s", v.Type)
}

func rawToInt(v bson.RawValue) (int, error) {
	switch v.Type {
	case 0, bsontype.Null:
		return 0, nil
	case bsontype.Int32:
		return int(v.Int32()), nil
	case bsontype.Int64:
		return int(v.Int64()), nil
	case bsontype.Double:
		return int(v.Double()), nil
	case bsontype.String:
		return strconv.Atoi(strings.TrimSpace(v.StringValue()))
	}
	return 0, fmt.Errorf("unsupported bson type %s", v.Type)
}

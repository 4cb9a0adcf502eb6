package models

// Prize positions of a result
const (
	PositionFirst  = "1st"
	PositionSecond = "2nd"
	PositionThird  = "3rd"
)

// Hit is one sale line matching one winning number
type Hit struct {
	Position string `json:"position"`
	Number   string `json:"number"`
	Rate     int64  `json:"rate"`
	Quantity int64  `json:"quantity"`
	Amount   int64  `json:"amount"` // Quantity * Rate, in fraction-cost units
}

// Winner is a ticket with at least one hit. Derived on demand, never stored.
type Winner struct {
	TicketID    string `json:"ticketId"`
	ClientName  string `json:"clientName,omitempty"`
	ClientPhone string `json:"clientPhone,omitempty"`
	Hits        []Hit  `json:"hits"`
	TotalWin    int64  `json:"totalWin"`
}

// WinnersReport is what the shop owner sees for a selected result
type WinnersReport struct {
	Result      *Result         `json:"result"`
	DrawName    string          `json:"drawName"`
	Winners     []Winner        `json:"winners"`
	PaidMap     map[string]bool `json:"paidMap"`
	TotalPayout int64           `json:"totalPayout"`
}

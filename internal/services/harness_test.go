package services

import (
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testBusiness = "biz-1"

var testDay = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

type harness struct {
	businesses *fakeBusinessRepo
	draws      *fakeDrawRepo
	sales      *fakeSaleRepo
	index      *fakeIndexRepo
	results    *fakeResultRepo
	payouts    *fakePayoutRepo
	draw       *models.Draw
}

func newHarness() *harness {
	draw := &models.Draw{
		ID:              primitive.NewObjectID(),
		BusinessID:      testBusiness,
		Name:            "Triple Noche",
		NumberOfDigits:  2,
		CostPerFraction: 2,
		ScheduleList:    []string{"01:00 PM", "09:00 PM"},
	}
	return &harness{
		businesses: newFakeBusinessRepo(),
		draws:      newFakeDrawRepo(draw),
		sales:      &fakeSaleRepo{},
		index:      newFakeIndexRepo(),
		results:    newFakeResultRepo(),
		payouts:    newFakePayoutRepo(),
		draw:       draw,
	}
}

func (h *harness) saleService() *SaleServiceImpl {
	svc := NewSaleService(h.sales, h.index, h.draws, h.payouts, &sequentialTicketIDs{}, time.UTC)
	svc.now = func() time.Time { return testDay.Add(10 * time.Hour) }
	return svc
}

func (h *harness) resultService() *ResultServiceImpl {
	return NewResultService(h.results, h.draws, h.payouts, time.UTC)
}

func (h *harness) payoutService() *PayoutServiceImpl {
	svc := NewPayoutService(h.results, h.draws, h.sales, h.payouts, time.UTC)
	svc.now = func() time.Time { return testDay.Add(20 * time.Hour) }
	return svc
}

func (h *harness) financeService() *FinanceServiceImpl {
	return NewFinanceService(h.businesses, h.draws, h.sales, h.results, h.payouts, time.UTC)
}

// seedSale stores a sale played for the 01:00 PM schedule at the given time
func (h *harness) seedSale(ticketID string, createdAt time.Time, lines ...models.SaleLine) *models.Sale {
	var fractions int
	for _, l := range lines {
		fractions += l.Quantity
	}
	s := &models.Sale{
		ID:             primitive.NewObjectID(),
		BusinessID:     testBusiness,
		TicketID:       ticketID,
		DrawID:         h.draw.ID,
		ScheduleLabels: []string{"01:00 PM"},
		ScheduleSlugs:  []string{"0100_pm"},
		Lines:          lines,
		TotalCost:      float64(fractions) * h.draw.CostPerFraction,
		CreatedAt:      createdAt,
	}
	h.sales.sales = append(h.sales.sales, s)
	return s
}

// seedResult stores the 05/12/30 result for the 01:00 PM schedule of testDay
func (h *harness) seedResult() *models.Result {
	r := &models.Result{
		ID:            primitive.NewObjectID(),
		BusinessID:    testBusiness,
		DrawID:        h.draw.ID,
		Date:          "2024-03-10",
		ScheduleLabel: "01:00 PM",
		ScheduleSlug:  "0100_pm",
		WinningNumbers: models.WinningNumbers{
			First:  "05",
			Second: "12",
			Third:  "30",
		},
	}
	h.results.results[r.ID] = r
	return r
}

// seedExample stores the worked example: A wins 33, B wins 8
func (h *harness) seedExample() *models.Result {
	h.seedSale("A", testDay.Add(9*time.Hour), models.SaleLine{Number: "05", Quantity: 3})
	h.seedSale("B", testDay.Add(11*time.Hour),
		models.SaleLine{Number: "12", Quantity: 2},
		models.SaleLine{Number: "30", Quantity: 1},
	)
	h.seedSale("C", testDay.Add(12*time.Hour), models.SaleLine{Number: "77", Quantity: 5})
	return h.seedResult()
}

package services

import (
	"testing"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func engineFixture() (*models.Draw, *models.Result) {
	draw := &models.Draw{
		ID:              primitive.NewObjectID(),
		BusinessID:      "biz-1",
		Name:            "Triple Noche",
		NumberOfDigits:  2,
		CostPerFraction: 1,
		ScheduleList:    []string{"01:00 PM", "09:00 PM"},
	}
	result := &models.Result{
		ID:            primitive.NewObjectID(),
		BusinessID:    "biz-1",
		DrawID:        draw.ID,
		Date:          "2024-03-10",
		ScheduleLabel: "01:00 PM",
		ScheduleSlug:  "0100_pm",
		WinningNumbers: models.WinningNumbers{
			First:  "05",
			Second: "12",
			Third:  "30",
		},
	}
	return draw, result
}

func sale(draw *models.Draw, ticketID string, lines ...models.SaleLine) *models.Sale {
	return &models.Sale{
		ID:             primitive.NewObjectID(),
		BusinessID:     draw.BusinessID,
		TicketID:       ticketID,
		DrawID:         draw.ID,
		ScheduleLabels: []string{"01:00 PM"},
		ScheduleSlugs:  []string{"0100_pm"},
		Lines:          lines,
	}
}

func TestResolveWinners(t *testing.T) {
	draw, result := engineFixture()

	t.Run("worked example", func(t *testing.T) {
		saleA := sale(draw, "A", models.SaleLine{Number: "5", Quantity: 3})
		saleB := sale(draw, "B",
			models.SaleLine{Number: "12", Quantity: 2},
			models.SaleLine{Number: "30", Quantity: 1},
		)

		winners := ResolveWinners(result, draw, []*models.Sale{saleB, saleA})
		if len(winners) != 2 {
			t.Fatalf("Expected 2 winners, but got %d", len(winners))
		}

		a := winners[0]
		if a.TicketID != "A" || a.TotalWin != 33 || len(a.Hits) != 1 {
			t.Fatalf("Expected ticket A to win 33 with one hit, but got %+v", a)
		}
		want := models.Hit{Position: models.PositionFirst, Number: "05", Rate: 11, Quantity: 3, Amount: 33}
		if a.Hits[0] != want {
			t.Errorf("Expected hit %+v, but got %+v", want, a.Hits[0])
		}

		b := winners[1]
		if b.TicketID != "B" || b.TotalWin != 8 || len(b.Hits) != 2 {
			t.Fatalf("Expected ticket B to win 8 with two hits, but got %+v", b)
		}
		if b.Hits[0] != (models.Hit{Position: models.PositionSecond, Number: "12", Rate: 3, Quantity: 2, Amount: 6}) {
			t.Errorf("Unexpected first hit for B: %+v", b.Hits[0])
		}
		if b.Hits[1] != (models.Hit{Position: models.PositionThird, Number: "30", Rate: 2, Quantity: 1, Amount: 2}) {
			t.Errorf("Unexpected second hit for B: %+v", b.Hits[1])
		}

		if total := ComputeTotalPayout(winners); total != 41 {
			t.Errorf("Expected total payout 41, but got %d", total)
		}
	})

	t.Run("non matching ticket is excluded", func(t *testing.T) {
		loser := sale(draw, "C", models.SaleLine{Number: "99", Quantity: 10})
		winners := ResolveWinners(result, draw, []*models.Sale{loser})
		if len(winners) != 0 {
			t.Errorf("Expected no winners, but got %+v", winners)
		}
	})

	t.Run("first and third on one ticket is one winner", func(t *testing.T) {
		s := sale(draw, "D",
			models.SaleLine{Number: "05", Quantity: 1},
			models.SaleLine{Number: "30", Quantity: 4},
		)
		winners := ResolveWinners(result, draw, []*models.Sale{s})
		if len(winners) != 1 {
			t.Fatalf("Expected 1 winner, but got %d", len(winners))
		}
		if len(winners[0].Hits) != 2 || winners[0].TotalWin != 11+8 {
			t.Errorf("Expected two hits worth 19, but got %+v", winners[0])
		}
	})

	t.Run("number in two positions scores twice", func(t *testing.T) {
		_, r := engineFixture()
		r.DrawID = draw.ID
		r.WinningNumbers = models.WinningNumbers{First: "07", Second: "7", Third: "40"}
		s := sale(draw, "E", models.SaleLine{Number: "7", Quantity: 2})

		winners := ResolveWinners(r, draw, []*models.Sale{s})
		if len(winners) != 1 || winners[0].TotalWin != 2*11+2*3 {
			t.Errorf("Expected one winner worth 28, but got %+v", winners)
		}
	})

	t.Run("other schedule and other draw are ignored", func(t *testing.T) {
		night := sale(draw, "F", models.SaleLine{Number: "05", Quantity: 1})
		night.ScheduleLabels = []string{"09:00 PM"}
		night.ScheduleSlugs = []string{"0900_pm"}

		foreign := sale(draw, "G", models.SaleLine{Number: "05", Quantity: 1})
		foreign.DrawID = primitive.NewObjectID()

		winners := ResolveWinners(result, draw, []*models.Sale{night, foreign})
		if len(winners) != 0 {
			t.Errorf("Expected no winners, but got %+v", winners)
		}
	})

	t.Run("legacy sale without slugs matches by label", func(t *testing.T) {
		legacy := sale(draw, "H", models.SaleLine{Number: "5", Quantity: 1})
		legacy.ScheduleSlugs = nil
		legacy.ScheduleLabels = []string{" 01:00  PM "}

		winners := ResolveWinners(result, draw, []*models.Sale{legacy})
		if len(winners) != 1 || winners[0].TotalWin != 11 {
			t.Errorf("Expected one winner worth 11, but got %+v", winners)
		}
	})

	t.Run("zero quantity lines are skipped", func(t *testing.T) {
		s := sale(draw, "I", models.SaleLine{Number: "05", Quantity: 0})
		if winners := ResolveWinners(result, draw, []*models.Sale{s}); len(winners) != 0 {
			t.Errorf("Expected no winners, but got %+v", winners)
		}
	})

	t.Run("hits aggregate across sales sharing a ticket id", func(t *testing.T) {
		first := sale(draw, "J", models.SaleLine{Number: "05", Quantity: 1})
		second := sale(draw, "J", models.SaleLine{Number: "12", Quantity: 1})
		winners := ResolveWinners(result, draw, []*models.Sale{first, second})
		if len(winners) != 1 || winners[0].TotalWin != 14 {
			t.Errorf("Expected one winner worth 14, but got %+v", winners)
		}
	})
}

func TestBuildPayoutKey(t *testing.T) {
	drawID := primitive.NewObjectID()
	base := BuildPayoutKey(drawID, "2024-03-10", "01:00 PM", "T1")

	if got := BuildPayoutKey(drawID, "2024-03-10", "  01:00   PM ", "T1"); got != base {
		t.Errorf("Expected whitespace changes to keep the key %q, but got %q", base, got)
	}
	variants := map[string]string{
		"draw":   BuildPayoutKey(primitive.NewObjectID(), "2024-03-10", "01:00 PM", "T1"),
		"date":   BuildPayoutKey(drawID, "2024-03-11", "01:00 PM", "T1"),
		"ticket": BuildPayoutKey(drawID, "2024-03-10", "01:00 PM", "T2"),
	}
	for name, key := range variants {
		if key == base {
			t.Errorf("Expected a different key when the %s changes", name)
		}
	}
}

func TestSnowflakeTicketIDs(t *testing.T) {
	gen, err := NewSnowflakeTicketIDs(1)
	if err != nil {
		t.Fatalf("Expected no error, but got %v", err)
	}
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.NewTicketID()
		if seen[id] {
			t.Fatalf("Expected unique ids, but %s repeated", id)
		}
		seen[id] = true
	}

	if _, err := NewSnowflakeTicketIDs(5000); err == nil {
		t.Error("Expected an error for an out of range node, but got nil")
	}
}

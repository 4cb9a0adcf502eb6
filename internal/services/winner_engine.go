package services

import (
	"fmt"
	"sort"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize multipliers per position, in units of the draw's cost per fraction
const (
	RateFirst  int64 = 11
	RateSecond int64 = 3
	RateThird  int64 = 2
)

type prizePosition struct {
	name   string
	rate   int64
	number func(models.WinningNumbers) string
}

var prizePositions = []prizePosition{
	{models.PositionFirst, RateFirst, func(w models.WinningNumbers) string { return w.First }},
	{models.PositionSecond, RateSecond, func(w models.WinningNumbers) string { return w.Second }},
	{models.PositionThird, RateThird, func(w models.WinningNumbers) string { return w.Third }},
}

// ResolveWinners matches the sales of a result's slot against its winning numbers.
// Sales of another draw or without the result's schedule are ignored; the caller
// is responsible for the calendar-day filter. A line matching several positions
// earns every one of them. Hits are aggregated per ticket id and the winners are
// sorted by ticket id.
func ResolveWinners(result *models.Result, draw *models.Draw, sales []*models.Sale) []models.Winner {
	digits := draw.NumberOfDigits
	slug := resultSlug(result)

	winning := make([]string, len(prizePositions))
	for i, p := range prizePositions {
		winning[i] = utils.PadNumber(p.number(result.WinningNumbers), digits)
	}

	byTicket := make(map[string]*models.Winner)
	for _, sale := range sales {
		if sale == nil || sale.DrawID != result.DrawID || !SaleHasSchedule(sale, slug) {
			continue
		}
		for _, line := range sale.Lines {
			if line.Quantity <= 0 {
				continue
			}
			played := utils.PadNumber(line.Number, digits)
			for i, p := range prizePositions {
				if played != winning[i] {
					continue
				}
				w, ok := byTicket[sale.TicketID]
				if !ok {
					w = &models.Winner{
						TicketID:    sale.TicketID,
						ClientName:  sale.ClientName,
						ClientPhone: sale.ClientPhone,
					}
					byTicket[sale.TicketID] = w
				}
				qty := int64(line.Quantity)
				hit := models.Hit{
					Position: p.name,
					Number:   played,
					Rate:     p.rate,
					Quantity: qty,
					Amount:   qty * p.rate,
				}
				w.Hits = append(w.Hits, hit)
				w.TotalWin += hit.Amount
			}
		}
	}

	winners := make([]models.Winner, 0, len(byTicket))
	for _, w := range byTicket {
		winners = append(winners, *w)
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].TicketID < winners[j].TicketID })
	return winners
}

// ComputeTotalPayout sums the winnings of every winner
func ComputeTotalPayout(winners []models.Winner) int64 {
	var total int64
	for _, w := range winners {
		total += w.TotalWin
	}
	return total
}

// BuildPayoutKey identifies the payout of one ticket for one result slot.
// The schedule is keyed by slug and the ticket id comes last, so neither
// label spelling nor separators inside ids can make two pairs collide.
func BuildPayoutKey(drawID primitive.ObjectID, date, scheduleLabel, ticketID string) string {
	return fmt.Sprintf("%s|%s|%s|%s", drawID.Hex(), date, utils.Slugify(scheduleLabel), ticketID)
}

// SaleHasSchedule reports whether a sale was played for the schedule slug.
// Sales written before slugs were stored fall back to their labels.
func SaleHasSchedule(sale *models.Sale, slug string) bool {
	if len(sale.ScheduleSlugs) > 0 {
		for _, s := range sale.ScheduleSlugs {
			if s == slug {
				return true
			}
		}
		return false
	}
	for _, label := range sale.ScheduleLabels {
		if utils.Slugify(label) == slug {
			return true
		}
	}
	return false
}

// resultSlug returns the stored slug, deriving it for results saved without one
func resultSlug(result *models.Result) string {
	if result.ScheduleSlug != "" {
		return result.ScheduleSlug
	}
	return utils.Slugify(result.ScheduleLabel)
}

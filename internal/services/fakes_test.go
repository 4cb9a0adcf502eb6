package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ArowuTest/sorteos-backend/internal/models"
	"github.com/ArowuTest/sorteos-backend/internal/repositories"
	"github.com/ArowuTest/sorteos-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStore = errors.New("store unavailable")

type fakeBusinessRepo struct {
	businesses map[string]*models.Business
}

func newFakeBusinessRepo() *fakeBusinessRepo {
	return &fakeBusinessRepo{businesses: make(map[string]*models.Business)}
}

func (r *fakeBusinessRepo) FindByID(_ context.Context, id string) (*models.Business, error) {
	b, ok := r.businesses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBusinessRepo) GetOrCreate(ctx context.Context, id string) (*models.Business, error) {
	if _, ok := r.businesses[id]; !ok {
		r.businesses[id] = &models.Business{ID: id}
	}
	return r.FindByID(ctx, id)
}

func (r *fakeBusinessRepo) Update(_ context.Context, b *models.Business) error {
	cp := *b
	r.businesses[b.ID] = &cp
	return nil
}

type fakeDrawRepo struct {
	draws map[primitive.ObjectID]*models.Draw
}

func newFakeDrawRepo(draws ...*models.Draw) *fakeDrawRepo {
	r := &fakeDrawRepo{draws: make(map[primitive.ObjectID]*models.Draw)}
	for _, d := range draws {
		r.draws[d.ID] = d
	}
	return r
}

func (r *fakeDrawRepo) Create(_ context.Context, d *models.Draw) error {
	d.ID = primitive.NewObjectID()
	cp := *d
	r.draws[d.ID] = &cp
	return nil
}

func (r *fakeDrawRepo) FindByID(_ context.Context, businessID string, id primitive.ObjectID) (*models.Draw, error) {
	d, ok := r.draws[id]
	if !ok || d.BusinessID != businessID {
		return nil, repositories.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDrawRepo) FindAll(_ context.Context, businessID string) ([]*models.Draw, error) {
	out := []*models.Draw{}
	for _, d := range r.draws {
		if d.BusinessID == businessID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) Update(_ context.Context, d *models.Draw) error {
	if _, ok := r.draws[d.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *d
	r.draws[d.ID] = &cp
	return nil
}

func (r *fakeDrawRepo) Delete(_ context.Context, businessID string, id primitive.ObjectID) error {
	if d, ok := r.draws[id]; !ok || d.BusinessID != businessID {
		return repositories.ErrNotFound
	}
	delete(r.draws, id)
	return nil
}

type fakeSaleRepo struct {
	sales         []*models.Sale
	candidatesErr error
	scanErr       error
	candidateHits int
	scanHits      int
	// failDeleteOnCall makes the nth DeleteMany call fail (1-based, 0 disables)
	failDeleteOnCall int
	deleteCalls      int
}

func (r *fakeSaleRepo) Create(_ context.Context, s *models.Sale) error {
	s.ID = primitive.NewObjectID()
	cp := *s
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *fakeSaleRepo) FindByID(_ context.Context, businessID string, id primitive.ObjectID) (*models.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id && s.BusinessID == businessID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeSaleRepo) FindByCreatedRange(_ context.Context, businessID string, drawID *primitive.ObjectID, start, end time.Time) ([]*models.Sale, error) {
	out := []*models.Sale{}
	for _, s := range r.sales {
		if s.BusinessID != businessID || !utils.InWindow(s.CreatedAt, start, end) {
			continue
		}
		if drawID != nil && s.DrawID != *drawID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSaleRepo) FindCandidates(_ context.Context, businessID string, drawID primitive.ObjectID, slug string, start, end time.Time) ([]*models.Sale, error) {
	r.candidateHits++
	if r.candidatesErr != nil {
		return nil, r.candidatesErr
	}
	out := []*models.Sale{}
	for _, s := range r.sales {
		if s.BusinessID == businessID && s.DrawID == drawID && SaleHasSchedule(s, slug) && utils.InWindow(s.CreatedAt, start, end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) FindByDraw(_ context.Context, businessID string, drawID primitive.ObjectID) ([]*models.Sale, error) {
	r.scanHits++
	if r.scanErr != nil {
		return nil, r.scanErr
	}
	out := []*models.Sale{}
	for _, s := range r.sales {
		if s.BusinessID == businessID && s.DrawID == drawID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) CountByDraw(_ context.Context, businessID string, drawID primitive.ObjectID) (int64, error) {
	var n int64
	for _, s := range r.sales {
		if s.BusinessID == businessID && s.DrawID == drawID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSaleRepo) Update(_ context.Context, s *models.Sale) error {
	for i, existing := range r.sales {
		if existing.ID == s.ID {
			cp := *s
			r.sales[i] = &cp
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeSaleRepo) Delete(_ context.Context, businessID string, id primitive.ObjectID) error {
	for i, s := range r.sales {
		if s.ID == id && s.BusinessID == businessID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeSaleRepo) FindBatch(_ context.Context, businessID string, limit int) ([]*models.Sale, error) {
	out := []*models.Sale{}
	for _, s := range r.sales {
		if len(out) == limit {
			break
		}
		if s.BusinessID == businessID {
			out = append(out, &models.Sale{ID: s.ID, TicketID: s.TicketID})
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) DeleteMany(_ context.Context, businessID string, ids []primitive.ObjectID) (int64, error) {
	r.deleteCalls++
	if r.deleteCalls == r.failDeleteOnCall {
		return 0, errStore
	}
	drop := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.sales[:0]
	var n int64
	for _, s := range r.sales {
		if s.BusinessID == businessID && drop[s.ID] {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.sales = kept
	return n, nil
}

type fakeIndexRepo struct {
	entries   map[string]*models.TicketIndex
	createErr error
}

func newFakeIndexRepo() *fakeIndexRepo {
	return &fakeIndexRepo{entries: make(map[string]*models.TicketIndex)}
}

func (r *fakeIndexRepo) Create(_ context.Context, e *models.TicketIndex) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.entries[e.TicketID]; ok {
		return repositories.ErrDuplicate
	}
	cp := *e
	r.entries[e.TicketID] = &cp
	return nil
}

func (r *fakeIndexRepo) FindByTicketID(_ context.Context, ticketID string) (*models.TicketIndex, error) {
	e, ok := r.entries[ticketID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeIndexRepo) Delete(_ context.Context, ticketID string) error {
	delete(r.entries, ticketID)
	return nil
}

func (r *fakeIndexRepo) DeleteMany(_ context.Context, ticketIDs []string) (int64, error) {
	var n int64
	for _, id := range ticketIDs {
		if _, ok := r.entries[id]; ok {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

type fakeResultRepo struct {
	results map[primitive.ObjectID]*models.Result
	// createErr is returned by Create after the slot pre-check, like a racing insert
	createErr error
}

func newFakeResultRepo(results ...*models.Result) *fakeResultRepo {
	r := &fakeResultRepo{results: make(map[primitive.ObjectID]*models.Result)}
	for _, res := range results {
		r.results[res.ID] = res
	}
	return r
}

func (r *fakeResultRepo) Create(_ context.Context, res *models.Result) error {
	if r.createErr != nil {
		return r.createErr
	}
	res.ID = primitive.NewObjectID()
	cp := *res
	r.results[res.ID] = &cp
	return nil
}

func (r *fakeResultRepo) FindByID(_ context.Context, businessID string, id primitive.ObjectID) (*models.Result, error) {
	res, ok := r.results[id]
	if !ok || res.BusinessID != businessID {
		return nil, repositories.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeResultRepo) FindByDate(_ context.Context, businessID, date string) ([]*models.Result, error) {
	out := []*models.Result{}
	for _, res := range r.results {
		if res.BusinessID == businessID && res.Date == date {
			cp := *res
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduleSlug < out[j].ScheduleSlug })
	return out, nil
}

func (r *fakeResultRepo) FindBySlot(_ context.Context, businessID string, drawID primitive.ObjectID, date, slug string) (*models.Result, error) {
	for _, res := range r.results {
		if res.BusinessID == businessID && res.DrawID == drawID && res.Date == date && res.ScheduleSlug == slug {
			cp := *res
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeResultRepo) CountByDraw(_ context.Context, businessID string, drawID primitive.ObjectID) (int64, error) {
	var n int64
	for _, res := range r.results {
		if res.BusinessID == businessID && res.DrawID == drawID {
			n++
		}
	}
	return n, nil
}

func (r *fakeResultRepo) Update(_ context.Context, res *models.Result) error {
	if _, ok := r.results[res.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *res
	r.results[res.ID] = &cp
	return nil
}

func (r *fakeResultRepo) Delete(_ context.Context, businessID string, id primitive.ObjectID) error {
	if res, ok := r.results[id]; !ok || res.BusinessID != businessID {
		return repositories.ErrNotFound
	}
	delete(r.results, id)
	return nil
}

func (r *fakeResultRepo) FindBatchIDs(_ context.Context, businessID string, limit int) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	for id, res := range r.results {
		if len(ids) == limit {
			break
		}
		if res.BusinessID == businessID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeResultRepo) DeleteMany(_ context.Context, businessID string, ids []primitive.ObjectID) (int64, error) {
	var n int64
	for _, id := range ids {
		if res, ok := r.results[id]; ok && res.BusinessID == businessID {
			delete(r.results, id)
			n++
		}
	}
	return n, nil
}

type fakePayoutRepo struct {
	payouts map[string]*models.PayoutStatus
	upserts int
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{payouts: make(map[string]*models.PayoutStatus)}
}

func (r *fakePayoutRepo) FindByKey(_ context.Context, key string) (*models.PayoutStatus, error) {
	p, ok := r.payouts[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePayoutRepo) Upsert(_ context.Context, p *models.PayoutStatus) error {
	r.upserts++
	cp := *p
	if existing, ok := r.payouts[p.Key]; ok {
		cp.CreatedAt = existing.CreatedAt
	}
	r.payouts[p.Key] = &cp
	return nil
}

func (r *fakePayoutRepo) FindBySlot(_ context.Context, businessID string, drawID primitive.ObjectID, date, slug string) ([]*models.PayoutStatus, error) {
	out := []*models.PayoutStatus{}
	for _, p := range r.payouts {
		if p.BusinessID == businessID && p.DrawID == drawID && p.Date == date && p.ScheduleSlug == slug {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePayoutRepo) CountPaidByTicket(_ context.Context, businessID, ticketID string) (int64, error) {
	var n int64
	for _, p := range r.payouts {
		if p.BusinessID == businessID && p.TicketID == ticketID && p.Status == models.PayoutStatePaid {
			n++
		}
	}
	return n, nil
}

func (r *fakePayoutRepo) CountBySlot(_ context.Context, businessID string, drawID primitive.ObjectID, date, slug string, status models.PayoutState) (int64, error) {
	var n int64
	for _, p := range r.payouts {
		if p.BusinessID == businessID && p.DrawID == drawID && p.Date == date && p.ScheduleSlug == slug &&
			(status == "" || p.Status == status) {
			n++
		}
	}
	return n, nil
}

type sequentialTicketIDs struct {
	next int
}

func (g *sequentialTicketIDs) NewTicketID() string {
	g.next++
	return "TK" + string(rune('A'+g.next-1))
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/logging"
)

type AvailabilityStatus int

const (
	NotQueryable AvailabilityStatus = iota
	Fetching
	Resolved
	Errored
)

func (s AvailabilityStatus) String() string {
	switch s {
	case NotQueryable:
		return "not queryable"
	case Fetching:
		return "fetching"
	case Resolved:
		return "resolved"
	case Errored:
		return "errored"
	default:
		return fmt.Sprintf("AvailabilityStatus(%d)", int(s))
	}
}

// AvailabilitySnapshot is the resolver's exposed state. Tables is non-nil
// once Resolved or Errored; Message is set only when Errored.
type AvailabilitySnapshot struct {
	Query   models.AvailabilityQuery
	Status  AvailabilityStatus
	Tables  []models.TableCandidate
	Message string
}

const defaultAvailabilityMessage = "Could not load available tables"

// AvailabilityResolver looks up free tables for the current (date, time,
// party size) key. Every change of key starts a new generation; a completed
// lookup is applied only if its generation is still the latest, and the
// superseded lookup's context is cancelled. Failures never reach the caller:
// they become the Errored status.
type AvailabilityResolver struct {
	client   AvailabilityClient
	log      logging.Logger
	observer func([]models.TableCandidate)

	mu     sync.Mutex
	snap   AvailabilitySnapshot
	gen    uint64
	cancel context.CancelFunc
	closed bool

	// dispatch keeps observer calls in completion order, outside mu.
	dispatch sync.Mutex
	wg       sync.WaitGroup
}

// NewAvailabilityResolver builds a resolver. observer, if not nil, receives
// the table list on every Resolved and an empty list on every Errored. It is
// called from the lookup goroutine and must not call Wait or Close.
func NewAvailabilityResolver(client AvailabilityClient, logger logging.Logger, observer func([]models.TableCandidate)) *AvailabilityResolver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &AvailabilityResolver{
		client:   client,
		log:      logger.With("component", "availability"),
		observer: observer,
	}
}

// SetQuery replaces the whole key. An incomplete key moves to NotQueryable
// without any request; a complete key different from the current one starts
// a lookup. Setting the same complete key again does nothing.
func (r *AvailabilityResolver) SetQuery(ctx context.Context, q models.AvailabilityQuery) {
	r.update(ctx, func(cur *models.AvailabilityQuery) { *cur = q })
}

func (r *AvailabilityResolver) SetDate(ctx context.Context, date string) {
	r.update(ctx, func(cur *models.AvailabilityQuery) { cur.Date = date })
}

func (r *AvailabilityResolver) SetTime(ctx context.Context, t string) {
	r.update(ctx, func(cur *models.AvailabilityQuery) { cur.Time = t })
}

func (r *AvailabilityResolver) SetPartySize(ctx context.Context, n int) {
	r.update(ctx, func(cur *models.AvailabilityQuery) { cur.PartySize = n })
}

// Reload starts a new lookup for the current key, even if it is unchanged.
func (r *AvailabilityResolver) Reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || !r.snap.Query.Complete() {
		return
	}
	r.startLocked(ctx)
}

func (r *AvailabilityResolver) update(ctx context.Context, mutate func(*models.AvailabilityQuery)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	q := r.snap.Query
	mutate(&q)
	q.Date = strings.TrimSpace(q.Date)
	q.Time = strings.TrimSpace(q.Time)

	if !q.Complete() {
		r.supersedeLocked()
		if r.snap.Status != NotQueryable {
			r.log.Debug(ctx, "availability query incomplete", "date", q.Date, "time", q.Time, "party_size", q.PartySize)
		}
		r.snap = AvailabilitySnapshot{Query: q, Status: NotQueryable}
		return
	}

	if q == r.snap.Query && r.snap.Status != NotQueryable {
		return
	}

	r.snap.Query = q
	r.startLocked(ctx)
}

// supersedeLocked invalidates any in-flight lookup.
func (r *AvailabilityResolver) supersedeLocked() {
	r.gen++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *AvailabilityResolver) startLocked(ctx context.Context) {
	r.supersedeLocked()
	gen := r.gen

	fctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.snap = AvailabilitySnapshot{Query: r.snap.Query, Status: Fetching}

	q := r.snap.Query
	r.log.Debug(ctx, "availability lookup started", "gen", gen, "date", q.Date, "time", q.Time, "party_size", q.PartySize)

	r.wg.Add(1)
	go r.fetch(fctx, cancel, gen, q)
}

func (r *AvailabilityResolver) fetch(ctx context.Context, cancel context.CancelFunc, gen uint64, q models.AvailabilityQuery) {
	defer r.wg.Done()
	defer cancel()

	tables, err := r.client.GetAvailableTables(ctx, q)

	r.dispatch.Lock()
	defer r.dispatch.Unlock()

	r.mu.Lock()
	if gen != r.gen {
		latest := r.gen
		r.mu.Unlock()
		r.log.Debug(ctx, "discarding superseded availability result", "gen", gen, "latest", latest)
		return
	}

	r.cancel = nil
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = defaultAvailabilityMessage
		}
		r.snap.Status = Errored
		r.snap.Tables = []models.TableCandidate{}
		r.snap.Message = msg
		r.log.Warn(ctx, "availability lookup failed", "error", err)
	} else {
		if tables == nil {
			tables = []models.TableCandidate{}
		}
		r.snap.Status = Resolved
		r.snap.Tables = tables
		r.log.Debug(ctx, "availability resolved", "gen", gen, "tables", len(tables))
	}
	out := append([]models.TableCandidate{}, r.snap.Tables...)
	r.mu.Unlock()

	if r.observer != nil {
		r.observer(out)
	}
}

// Snapshot returns a copy of the exposed state.
func (r *AvailabilityResolver) Snapshot() AvailabilitySnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.snap
	if r.snap.Tables != nil {
		out.Tables = append([]models.TableCandidate{}, r.snap.Tables...)
	}
	return out
}

// Wait blocks until every started lookup has finished. It must not be
// called concurrently with methods that start lookups.
func (r *AvailabilityResolver) Wait() {
	r.wg.Wait()
}

// Close cancels any in-flight lookup and waits for it. Later calls to the
// setters are ignored.
func (r *AvailabilityResolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.supersedeLocked()
	r.mu.Unlock()

	r.wg.Wait()
}

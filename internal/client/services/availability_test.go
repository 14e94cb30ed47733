package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityReply struct {
	tables []models.TableCandidate
	err    error
}

type pendingLookup struct {
	q     models.AvailabilityQuery
	ctx   context.Context
	reply chan availabilityReply
}

// fakeAvailability parks every lookup until the test replies to it.
type fakeAvailability struct {
	mu      sync.Mutex
	pending []*pendingLookup
}

func (f *fakeAvailability) GetAvailableTables(ctx context.Context, q models.AvailabilityQuery) ([]models.TableCandidate, error) {
	p := &pendingLookup{q: q, ctx: ctx, reply: make(chan availabilityReply, 1)}
	f.mu.Lock()
	f.pending = append(f.pending, p)
	f.mu.Unlock()

	r := <-p.reply
	return r.tables, r.err
}

func (f *fakeAvailability) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (f *fakeAvailability) lookup(t *testing.T, i int) *pendingLookup {
	t.Helper()
	require.Eventually(t, func() bool { return f.calls() > i }, time.Second, time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending[i]
}

type observed struct {
	mu    sync.Mutex
	lists [][]models.TableCandidate
}

func (o *observed) observe(l []models.TableCandidate) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lists = append(o.lists, l)
}

func (o *observed) all() [][]models.TableCandidate {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([][]models.TableCandidate(nil), o.lists...)
}

var (
	may1   = models.AvailabilityQuery{Date: "2024-05-01", Time: "19:00", PartySize: 4}
	table7 = models.TableCandidate{ID: 1, TableNumber: 7, Capacity: 4, Zone: "terrace"}
	table9 = models.TableCandidate{ID: 2, TableNumber: 9, Capacity: 6, Zone: "hall"}
)

func newResolver(t *testing.T) (*AvailabilityResolver, *fakeAvailability, *observed) {
	t.Helper()
	fa := &fakeAvailability{}
	obs := &observed{}
	r := NewAvailabilityResolver(fa, nil, obs.observe)
	t.Cleanup(func() {
		fa.mu.Lock()
		for _, p := range fa.pending {
			select {
			case p.reply <- availabilityReply{}:
			default:
			}
		}
		fa.mu.Unlock()
		r.Close()
	})
	return r, fa, obs
}

func TestResolver_IncompleteQueryDispatchesNothing(t *testing.T) {
	tests := []models.AvailabilityQuery{
		{},
		{Date: "2024-05-01", Time: "19:00"},
		{Date: "2024-05-01", Time: "19:00", PartySize: -1},
		{Time: "19:00", PartySize: 2},
		{Date: "2024-05-01", Time: "   ", PartySize: 2},
	}
	for _, q := range tests {
		r, fa, obs := newResolver(t)
		r.SetQuery(context.Background(), q)
		r.Wait()

		assert.Equal(t, NotQueryable, r.Snapshot().Status, "%+v", q)
		assert.Zero(t, fa.calls())
		assert.Empty(t, obs.all())
	}
}

func TestResolver_EmptyResultIsResolvedNotErrored(t *testing.T) {
	r, fa, obs := newResolver(t)

	r.SetQuery(context.Background(), may1)
	assert.Equal(t, Fetching, r.Snapshot().Status, "fetching starts synchronously")

	p := fa.lookup(t, 0)
	assert.Equal(t, may1, p.q)
	p.reply <- availabilityReply{tables: []models.TableCandidate{}}
	r.Wait()

	s := r.Snapshot()
	assert.Equal(t, Resolved, s.Status)
	assert.NotNil(t, s.Tables)
	assert.Empty(t, s.Tables)
	assert.Empty(t, s.Message)
	assert.Equal(t, [][]models.TableCandidate{{}}, obs.all())
}

func TestResolver_NilResultIsNormalized(t *testing.T) {
	r, fa, _ := newResolver(t)
	r.SetQuery(context.Background(), may1)
	fa.lookup(t, 0).reply <- availabilityReply{}
	r.Wait()

	assert.NotNil(t, r.Snapshot().Tables)
}

func TestResolver_ErrorBecomesErroredWithEmptyList(t *testing.T) {
	r, fa, obs := newResolver(t)
	r.SetQuery(context.Background(), may1)
	fa.lookup(t, 0).reply <- availabilityReply{err: errors.New("Restaurant is closed")}
	r.Wait()

	s := r.Snapshot()
	assert.Equal(t, Errored, s.Status)
	assert.Equal(t, "Restaurant is closed", s.Message)
	assert.Empty(t, s.Tables)
	assert.Equal(t, [][]models.TableCandidate{{}}, obs.all())
}

func TestResolver_StaleResponseIsDiscarded(t *testing.T) {
	r, fa, obs := newResolver(t)
	ctx := context.Background()

	r.SetQuery(ctx, may1)
	first := fa.lookup(t, 0)

	r.SetPartySize(ctx, 6)
	second := fa.lookup(t, 1)
	assert.Equal(t, 6, second.q.PartySize)
	assert.ErrorIs(t, first.ctx.Err(), context.Canceled, "superseded lookup is cancelled")

	second.reply <- availabilityReply{tables: []models.TableCandidate{table9}}
	first.reply <- availabilityReply{tables: []models.TableCandidate{table7}}
	r.Wait()

	s := r.Snapshot()
	assert.Equal(t, Resolved, s.Status)
	assert.Equal(t, 6, s.Query.PartySize)
	assert.Equal(t, []models.TableCandidate{table9}, s.Tables)
	assert.Equal(t, [][]models.TableCandidate{{table9}}, obs.all())
}

func TestResolver_InvalidatingDropsInFlight(t *testing.T) {
	r, fa, obs := newResolver(t)
	ctx := context.Background()

	r.SetQuery(ctx, may1)
	p := fa.lookup(t, 0)

	r.SetPartySize(ctx, 0)
	assert.Equal(t, NotQueryable, r.Snapshot().Status)

	p.reply <- availabilityReply{tables: []models.TableCandidate{table7}}
	r.Wait()

	assert.Equal(t, NotQueryable, r.Snapshot().Status)
	assert.Nil(t, r.Snapshot().Tables)
	assert.Empty(t, obs.all())
}

func TestResolver_SameKeyIsNoOpUnlessReload(t *testing.T) {
	r, fa, _ := newResolver(t)
	ctx := context.Background()

	r.SetQuery(ctx, may1)
	fa.lookup(t, 0).reply <- availabilityReply{tables: []models.TableCandidate{table7}}
	r.Wait()

	r.SetQuery(ctx, models.AvailabilityQuery{Date: " 2024-05-01 ", Time: "19:00", PartySize: 4})
	r.SetDate(ctx, "2024-05-01")
	r.Wait()
	assert.Equal(t, 1, fa.calls())
	assert.Equal(t, Resolved, r.Snapshot().Status)

	r.Reload(ctx)
	assert.Equal(t, Fetching, r.Snapshot().Status)
	fa.lookup(t, 1).reply <- availabilityReply{tables: []models.TableCandidate{table7, table9}}
	r.Wait()
	assert.Len(t, r.Snapshot().Tables, 2)
}

func TestResolver_FieldSettersBuildTheKey(t *testing.T) {
	r, fa, _ := newResolver(t)
	ctx := context.Background()

	r.SetDate(ctx, "2024-05-01")
	r.SetTime(ctx, "19:00")
	assert.Equal(t, NotQueryable, r.Snapshot().Status)
	assert.Zero(t, fa.calls())

	r.SetPartySize(ctx, 4)
	assert.Equal(t, may1, fa.lookup(t, 0).q)
}

func TestResolver_ReloadWithoutCompleteKeyDoesNothing(t *testing.T) {
	r, fa, _ := newResolver(t)
	r.Reload(context.Background())
	r.Wait()
	assert.Zero(t, fa.calls())
}

func TestResolver_CloseCancelsAndIgnoresLaterCalls(t *testing.T) {
	fa := &fakeAvailability{}
	r := NewAvailabilityResolver(fa, nil, nil)
	ctx := context.Background()

	r.SetQuery(ctx, may1)
	p := fa.lookup(t, 0)

	go func() {
		<-p.ctx.Done()
		p.reply <- availabilityReply{err: p.ctx.Err()}
	}()
	r.Close()

	assert.Equal(t, Fetching, r.Snapshot().Status, "cancelled result is discarded")
	r.SetPartySize(ctx, 2)
	assert.Equal(t, 1, fa.calls())
	r.Close()
}

func TestAvailabilityStatus_String(t *testing.T) {
	assert.Equal(t, "not queryable", NotQueryable.String())
	assert.Equal(t, "errored", Errored.String())
}

package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/session"
	courtClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/courtapi"
	"github.com/m04kA/SMC-CourtBooking/internal/selection"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/metrics"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const (
	testUser     = int64(42)
	testFacility = int64(7)
)

var (
	today    = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tomorrow = today.AddDate(0, 0, 1)
	testNow  = time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type memoryRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.BookingSession
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sessions: make(map[string]*domain.BookingSession)}
}

func clone(s *domain.BookingSession) *domain.BookingSession {
	c := *s
	c.Intervals = make(domain.BookedIntervals, len(s.Intervals))
	for k, v := range s.Intervals {
		c.Intervals[k] = append([]domain.BookedInterval(nil), v...)
	}
	c.Facility.CourtIDs = append([]int64(nil), s.Facility.CourtIDs...)
	c.Selection.Slots = append([]types.TimeString(nil), s.Selection.Slots...)
	return &c
}

func (r *memoryRepo) Get(_ context.Context, id string) (*domain.BookingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return clone(s), nil
}

func (r *memoryRepo) Save(_ context.Context, s *domain.BookingSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = clone(s)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type fakeCourtAPI struct {
	facilityErr error
	intervals   func(date time.Time) (domain.BookedIntervals, error)
	price       func(courtID int64, start, end time.Time) (int64, error)
	priceCalls  int
}

func (f *fakeCourtAPI) GetFacility(_ context.Context, facilityID int64) (*domain.Facility, error) {
	if f.facilityErr != nil {
		return nil, f.facilityErr
	}
	return &domain.Facility{ID: facilityID, Name: "Sân A", CourtCount: 2, MinPrice: 60000, MaxPrice: 120000}, nil
}

func (f *fakeCourtAPI) GetCourts(_ context.Context, _ int64) ([]int64, error) {
	return []int64{11, 12}, nil
}

func (f *fakeCourtAPI) GetBookedIntervals(_ context.Context, _ int64, date time.Time) (domain.BookedIntervals, error) {
	if f.intervals != nil {
		return f.intervals(date)
	}
	return nil, nil
}

func (f *fakeCourtAPI) GetPrice(_ context.Context, courtID int64, start, end time.Time) (int64, error) {
	f.priceCalls++
	if f.price != nil {
		return f.price(courtID, start, end)
	}
	return int64(end.Sub(start)/(30*time.Minute)) * 50000, nil
}

func newTestService(api *fakeCourtAPI) (*Service, *memoryRepo) {
	repo := newMemoryRepo()
	svc := NewService(repo, api, metrics.Noop{}, Config{
		Labels:      slotgrid.DefaultLabels(),
		LockHorizon: time.Hour,
		Location:    time.UTC,
	}, logger.NewNop())
	svc.timeProvider = fixedTime{now: testNow}
	return svc, repo
}

func ts(s string) types.TimeString {
	return types.MustTimeString(s)
}

func startSession(t *testing.T, svc *Service) string {
	t.Helper()
	resp, err := svc.Start(context.Background(), testUser, testFacility, today)
	require.NoError(t, err)
	return resp.ID
}

func click(t *testing.T, svc *Service, id string, slot string) *clickResult {
	t.Helper()
	resp, err := svc.Click(context.Background(), id, testUser, ts(slot))
	require.NoError(t, err)
	return &clickResult{outcome: resp.Outcome, reason: resp.Reason, sel: resp.Session.Selection}
}

type clickResult struct {
	outcome string
	reason  string
	sel     models.SelectionResponse
}

func TestStart(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{
		intervals: func(time.Time) (domain.BookedIntervals, error) {
			return domain.BookedIntervals{
				12: {{Start: ts("10:00").On(today), End: ts("11:00").On(today)}},
			}, nil
		},
	})

	resp, err := svc.Start(context.Background(), testUser, testFacility, today)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2025-01-01", resp.Date)
	assert.Len(t, resp.Labels, 38)
	require.Len(t, resp.Courts, 2)
	assert.Equal(t, int64(11), resp.Selection.CourtID)
	assert.Equal(t, selection.PhaseIdle, resp.Selection.Phase)
	assert.Empty(t, resp.Selection.Slots)

	idx := slotgrid.IndexOf(slotgrid.DefaultLabels(), ts("10:30"))
	assert.Equal(t, "booked", resp.Courts[1].Statuses[idx])
	assert.Equal(t, "available", resp.Courts[0].Statuses[idx])
	assert.Equal(t, "locked", resp.Courts[0].Statuses[0], "05:00 is within the lock horizon")
}

func TestStart_FacilityNotFound(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{facilityErr: courtClient.ErrFacilityNotFound})

	_, err := svc.Start(context.Background(), testUser, testFacility, today)
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestStart_BackendFailure(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{facilityErr: courtClient.ErrInternal})

	_, err := svc.Start(context.Background(), testUser, testFacility, today)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestStart_PastDate(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})

	_, err := svc.Start(context.Background(), testUser, testFacility, today.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGet_AccessDenied(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)

	_, err := svc.Get(context.Background(), id, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(context.Background(), "missing", testUser)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestClick_PriceGatingBySelectionSize(t *testing.T) {
	api := &fakeCourtAPI{}
	svc, _ := newTestService(api)
	id := startSession(t, svc)

	// Один слот: цена не запрашивается
	res := click(t, svc, id, "08:00")
	assert.Equal(t, "anchored", res.outcome)
	res = click(t, svc, id, "08:00")
	assert.Equal(t, "committed", res.outcome)
	assert.Equal(t, []string{"08:00"}, res.sel.Slots)
	assert.Zero(t, api.priceCalls)
	assert.False(t, res.sel.CanPrice)

	// Два слота: цена есть, отправка недоступна
	click(t, svc, id, "08:00")
	res = click(t, svc, id, "08:30")
	assert.Equal(t, 1, api.priceCalls)
	require.NotNil(t, res.sel.Price)
	assert.Equal(t, int64(100000), *res.sel.Price)
	assert.False(t, res.sel.CanSubmit)
	assert.Equal(t, 1.0, res.sel.TotalHours)

	// Три слота: отправка доступна
	click(t, svc, id, "08:00")
	res = click(t, svc, id, "09:00")
	assert.Equal(t, 2, api.priceCalls)
	assert.True(t, res.sel.CanSubmit)
	require.NotNil(t, res.sel.StartTime)
	assert.Equal(t, "08:00", *res.sel.StartTime)
	assert.Equal(t, "09:30", *res.sel.EndTime)
}

func TestClick_RangeThroughBookedSlotClearsSelection(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{
		intervals: func(time.Time) (domain.BookedIntervals, error) {
			return domain.BookedIntervals{
				11: {{Start: ts("09:00").On(today), End: ts("09:30").On(today)}},
			}, nil
		},
	})
	id := startSession(t, svc)

	click(t, svc, id, "08:00")
	res := click(t, svc, id, "10:00")

	assert.Equal(t, "rejected", res.outcome)
	assert.Equal(t, string(selection.ReasonRangeObstructed), res.reason)
	assert.Equal(t, selection.PhaseIdle, res.sel.Phase)
	assert.Empty(t, res.sel.Slots)
}

func TestClick_PriceFailureIsVisibleAndRecoverable(t *testing.T) {
	fail := true
	api := &fakeCourtAPI{
		price: func(_ int64, start, end time.Time) (int64, error) {
			if fail {
				return 0, courtClient.ErrInternal
			}
			return 150000, nil
		},
	}
	svc, _ := newTestService(api)
	id := startSession(t, svc)

	click(t, svc, id, "08:00")
	res := click(t, svc, id, "09:00")

	assert.Equal(t, "committed", res.outcome)
	assert.Nil(t, res.sel.Price)
	assert.NotNil(t, res.sel.PriceError)
	assert.True(t, res.sel.CanPrice)

	_, err := svc.PrepareSubmission(context.Background(), id, testUser)
	assert.ErrorIs(t, err, ErrNotPriced)

	fail = false
	click(t, svc, id, "08:00")
	res = click(t, svc, id, "09:30")

	assert.Nil(t, res.sel.PriceError)
	require.NotNil(t, res.sel.Price)
	assert.Equal(t, int64(150000), *res.sel.Price)
}

func TestClick_StalePriceIsDiscarded(t *testing.T) {
	api := &fakeCourtAPI{}
	svc, repo := newTestService(api)
	id := startSession(t, svc)

	api.price = func(int64, time.Time, time.Time) (int64, error) {
		// Пока запрос в полёте, пользователь сбрасывает выбор
		_, err := svc.Clear(context.Background(), id, testUser)
		require.NoError(t, err)
		return 150000, nil
	}

	click(t, svc, id, "08:00")
	res := click(t, svc, id, "09:00")

	assert.Equal(t, "committed", res.outcome)
	assert.Empty(t, res.sel.Slots)
	assert.Nil(t, res.sel.Price)
	assert.Nil(t, res.sel.PriceError)

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Selection.Price.Priced)
}

func TestClick_RefusedWhileRefreshing(t *testing.T) {
	api := &fakeCourtAPI{}
	svc, _ := newTestService(api)
	id := startSession(t, svc)

	var clickErr error
	api.intervals = func(time.Time) (domain.BookedIntervals, error) {
		_, clickErr = svc.Click(context.Background(), id, testUser, ts("08:00"))
		return nil, nil
	}

	resp, err := svc.Refresh(context.Background(), id, testUser)
	require.NoError(t, err)

	assert.ErrorIs(t, clickErr, ErrGridRefreshing)
	assert.False(t, resp.Refreshing)

	res := click(t, svc, id, "08:00")
	assert.Equal(t, "anchored", res.outcome)
}

func TestClick_UnknownSlotIsRejected(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)

	res := click(t, svc, id, "08:15")
	assert.Equal(t, "rejected", res.outcome)
	assert.Equal(t, string(selection.ReasonUnknownSlot), res.reason)
}

func TestChangeDate_LastStartedWins(t *testing.T) {
	api := &fakeCourtAPI{}
	svc, _ := newTestService(api)
	id := startSession(t, svc)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	api.intervals = func(date time.Time) (domain.BookedIntervals, error) {
		if date.Equal(tomorrow) {
			// Пользователь успел выбрать другую дату до ответа
			resp, err := svc.ChangeDate(context.Background(), id, testUser, dayAfter)
			require.NoError(t, err)
			assert.Equal(t, "2025-01-03", resp.Date)
		}
		return domain.BookedIntervals{
			11: {{Start: ts("12:00").On(date), End: ts("13:00").On(date)}},
		}, nil
	}

	resp, err := svc.ChangeDate(context.Background(), id, testUser, tomorrow)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-03", resp.Date)
	assert.False(t, resp.Refreshing)

	idx := slotgrid.IndexOf(slotgrid.DefaultLabels(), ts("12:00"))
	assert.Equal(t, "booked", resp.Courts[0].Statuses[idx])
}

func TestChangeDate_ClearsSelection(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)
	click(t, svc, id, "08:00")
	click(t, svc, id, "09:00")

	resp, err := svc.ChangeDate(context.Background(), id, testUser, tomorrow)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-02", resp.Date)
	assert.Empty(t, resp.Selection.Slots)
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	fail := false
	api := &fakeCourtAPI{
		intervals: func(time.Time) (domain.BookedIntervals, error) {
			if fail {
				return nil, courtClient.ErrInternal
			}
			return domain.BookedIntervals{
				11: {{Start: ts("10:00").On(today), End: ts("11:00").On(today)}},
			}, nil
		},
	}
	svc, _ := newTestService(api)
	id := startSession(t, svc)

	fail = true
	_, err := svc.Refresh(context.Background(), id, testUser)
	assert.ErrorIs(t, err, ErrInternal)

	resp, err := svc.Get(context.Background(), id, testUser)
	require.NoError(t, err)
	assert.False(t, resp.Refreshing)

	idx := slotgrid.IndexOf(slotgrid.DefaultLabels(), ts("10:00"))
	assert.Equal(t, "booked", resp.Courts[0].Statuses[idx])

	_, err = svc.ChangeDate(context.Background(), id, testUser, tomorrow)
	assert.Error(t, err)

	resp, err = svc.Get(context.Background(), id, testUser)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", resp.Date, "failed date change keeps the resident date")
}

func TestRefresh_DropsObstructedSelection(t *testing.T) {
	booked := false
	api := &fakeCourtAPI{
		intervals: func(time.Time) (domain.BookedIntervals, error) {
			if !booked {
				return nil, nil
			}
			return domain.BookedIntervals{
				11: {{Start: ts("08:30").On(today), End: ts("09:00").On(today)}},
			}, nil
		},
	}
	svc, _ := newTestService(api)
	id := startSession(t, svc)
	click(t, svc, id, "08:00")
	click(t, svc, id, "09:00")

	booked = true
	resp, err := svc.Refresh(context.Background(), id, testUser)
	require.NoError(t, err)

	assert.Empty(t, resp.Selection.Slots)
	assert.False(t, resp.Selection.CanSubmit)
}

func TestSelectCourt(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)
	click(t, svc, id, "08:00")

	_, err := svc.SelectCourt(context.Background(), id, testUser, 99)
	assert.ErrorIs(t, err, ErrCourtNotFound)

	resp, err := svc.SelectCourt(context.Background(), id, testUser, 12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.Selection.CourtID)
	assert.Equal(t, selection.PhaseIdle, resp.Selection.Phase)
	assert.Empty(t, resp.Selection.Slots)
}

func TestPrepareSubmission(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)

	click(t, svc, id, "08:00")
	click(t, svc, id, "08:30")
	_, err := svc.PrepareSubmission(context.Background(), id, testUser)
	assert.ErrorIs(t, err, ErrNotSubmittable)

	click(t, svc, id, "08:00")
	click(t, svc, id, "09:00")

	draft, err := svc.PrepareSubmission(context.Background(), id, testUser)
	require.NoError(t, err)
	assert.Equal(t, int64(11), draft.CourtID)
	assert.Equal(t, ts("08:00").On(today), draft.StartAt)
	assert.Equal(t, ts("09:30").On(today), draft.EndAt)
	assert.Len(t, draft.Slots, 3)
	assert.Equal(t, int64(150000), draft.TotalPrice)
}

func TestCompleteSubmission(t *testing.T) {
	svc, _ := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)
	click(t, svc, id, "08:00")
	click(t, svc, id, "09:00")

	err := svc.CompleteSubmission(context.Background(), id, testUser, 11, domain.BookedInterval{
		Start: ts("08:00").On(today),
		End:   ts("09:30").On(today),
	})
	require.NoError(t, err)

	resp, err := svc.Get(context.Background(), id, testUser)
	require.NoError(t, err)
	assert.Empty(t, resp.Selection.Slots)

	idx := slotgrid.IndexOf(slotgrid.DefaultLabels(), ts("09:00"))
	assert.Equal(t, "booked", resp.Courts[0].Statuses[idx])
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	k := newKeyedMutex()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("a")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Empty(t, k.locks)
}

func TestLoad_RepositoryFailure(t *testing.T) {
	svc := NewService(failingRepo{}, &fakeCourtAPI{}, metrics.Noop{}, Config{}, logger.NewNop())

	_, err := svc.Get(context.Background(), "x", testUser)
	assert.ErrorIs(t, err, ErrInternal)
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) (*domain.BookingSession, error) {
	return nil, errors.New("connection refused")
}
func (failingRepo) Save(context.Context, *domain.BookingSession) error { return nil }
func (failingRepo) Delete(context.Context, string) error              { return nil }

// ctxRepo как и Redis, отказывает на отменённом контексте
type ctxRepo struct{ *memoryRepo }

func (r ctxRepo) Get(ctx context.Context, id string) (*domain.BookingSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.memoryRepo.Get(ctx, id)
}

func (r ctxRepo) Save(ctx context.Context, s *domain.BookingSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.memoryRepo.Save(ctx, s)
}

func newCtxTestService(api *fakeCourtAPI) (*Service, *memoryRepo) {
	mem := newMemoryRepo()
	svc := NewService(ctxRepo{mem}, api, metrics.Noop{}, Config{
		Labels:      slotgrid.DefaultLabels(),
		LockHorizon: time.Hour,
		Location:    time.UTC,
	}, logger.NewNop())
	svc.timeProvider = fixedTime{now: testNow}
	return svc, mem
}

func TestRefresh_ClientGoneDuringFetchResetsRefreshing(t *testing.T) {
	api := &fakeCourtAPI{}
	svc, repo := newCtxTestService(api)
	id := startSession(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	api.intervals = func(time.Time) (domain.BookedIntervals, error) {
		cancel()
		return nil, context.Canceled
	}

	_, err := svc.Refresh(ctx, id, testUser)
	assert.ErrorIs(t, err, ErrInternal)

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Refreshing)

	api.intervals = nil
	res := click(t, svc, id, "08:00")
	assert.Equal(t, "anchored", res.outcome)
}

func TestChangeDate_ClientGoneDuringFetchAppliesIntervals(t *testing.T) {
	api := &fakeCourtAPI{}
	svc, repo := newCtxTestService(api)
	id := startSession(t, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	api.intervals = func(time.Time) (domain.BookedIntervals, error) {
		cancel()
		return domain.BookedIntervals{
			11: {{Start: ts("10:00").On(tomorrow), End: ts("11:00").On(tomorrow)}},
		}, nil
	}

	_, _ = svc.ChangeDate(ctx, id, testUser, tomorrow)

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Refreshing)
	assert.True(t, stored.Date.Equal(tomorrow))
	assert.Len(t, stored.Intervals.ForCourt(11), 1)
}

func TestClick_ClientGoneDuringPriceLookup(t *testing.T) {
	tests := []struct {
		name       string
		price      int64
		priceErr   error
		wantPriced bool
	}{
		{name: "price arrives", price: 150000, wantPriced: true},
		{name: "price fails", priceErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeCourtAPI{}
			svc, repo := newCtxTestService(api)
			id := startSession(t, svc)
			click(t, svc, id, "08:00")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			api.price = func(int64, time.Time, time.Time) (int64, error) {
				cancel()
				return tt.price, tt.priceErr
			}

			// Итоговое чтение сессии уже идёт по отменённому контексту
			_, err := svc.Click(ctx, id, testUser, ts("09:00"))
			assert.ErrorIs(t, err, ErrInternal)

			stored, err := repo.Get(context.Background(), id)
			require.NoError(t, err)
			assert.False(t, stored.Selection.Price.Pending)
			assert.Equal(t, tt.wantPriced, stored.Selection.Price.Priced)

			view, err := svc.Get(context.Background(), id, testUser)
			require.NoError(t, err)
			if tt.wantPriced {
				require.NotNil(t, view.Selection.Price)
				assert.Equal(t, tt.price, *view.Selection.Price)
				return
			}
			assert.Nil(t, view.Selection.Price)
			assert.NotNil(t, view.Selection.PriceError)
		})
	}
}

func TestLoad_ExpiresStalePendingState(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(&fakeCourtAPI{})
	id := startSession(t, svc)
	click(t, svc, id, "08:00")
	click(t, svc, id, "09:00")

	markPending := func(startedAt time.Time) {
		stored, err := repo.Get(ctx, id)
		require.NoError(t, err)
		stored.Refreshing = true
		stored.PendingDate = tomorrow
		stored.RefreshStartedAt = startedAt
		stored.Selection.Price = domain.PriceState{Token: stored.Selection.Price.Token + 1, Pending: true}
		stored.PriceRequestedAt = startedAt
		require.NoError(t, repo.Save(ctx, stored))
	}

	// В пределах срока запросы считаются выполняющимися
	markPending(testNow.Add(-10 * time.Second))
	view, err := svc.Get(ctx, id, testUser)
	require.NoError(t, err)
	assert.True(t, view.Refreshing)
	assert.True(t, view.Selection.PricePending)

	markPending(testNow.Add(-time.Minute))
	view, err = svc.Get(ctx, id, testUser)
	require.NoError(t, err)
	assert.False(t, view.Refreshing)
	assert.Nil(t, view.PendingDate)
	assert.False(t, view.Selection.PricePending)
	assert.Nil(t, view.Selection.Price)
	assert.NotNil(t, view.Selection.PriceError)
	assert.Equal(t, "2025-01-01", view.Date)

	_, err = svc.PrepareSubmission(ctx, id, testUser)
	assert.ErrorIs(t, err, ErrNotPriced)

	res := click(t, svc, id, "10:00")
	assert.Equal(t, "anchored", res.outcome)
}

package get_court_grid

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	courtClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/courtapi"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	"github.com/m04kA/SMC-CourtBooking/pkg/logger"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var (
	today   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	testNow = time.Date(2025, 1, 1, 5, 0, 0, 0, time.UTC)
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeClient struct {
	facility    *domain.Facility
	courts      []int64
	intervals   domain.BookedIntervals
	facilityErr error
	intervalErr error
	gotDate     time.Time
}

func (c *fakeClient) GetFacility(_ context.Context, _ int64) (*domain.Facility, error) {
	if c.facilityErr != nil {
		return nil, c.facilityErr
	}
	f := *c.facility
	return &f, nil
}

func (c *fakeClient) GetCourts(_ context.Context, _ int64) ([]int64, error) {
	return c.courts, nil
}

func (c *fakeClient) GetBookedIntervals(_ context.Context, _ int64, date time.Time) (domain.BookedIntervals, error) {
	c.gotDate = date
	if c.intervalErr != nil {
		return nil, c.intervalErr
	}
	return c.intervals, nil
}

func newTestUseCase(client *fakeClient) *UseCase {
	uc := NewUseCase(client, Config{Location: time.UTC}, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		facility: &domain.Facility{ID: 7, Name: "Sân A"},
		courts:   []int64{12, 11},
		intervals: domain.BookedIntervals{
			11: {{Start: today.Add(10 * time.Hour), End: today.Add(11 * time.Hour)}},
		},
	}
}

func statusAt(t *testing.T, resp *Response, courtID int64, slot string) domain.SlotStatus {
	t.Helper()
	idx := slotgrid.IndexOf(resp.Labels, types.MustTimeString(slot))
	require.GreaterOrEqual(t, idx, 0)
	for _, row := range resp.Courts {
		if row.CourtID == courtID {
			return row.Statuses[idx]
		}
	}
	t.Fatalf("court %d not in grid", courtID)
	return ""
}

func TestExecute_Grid(t *testing.T) {
	client := newFakeClient()
	uc := newTestUseCase(client)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 7, Date: today.Add(15 * time.Hour)})
	require.NoError(t, err)

	assert.True(t, client.gotDate.Equal(today))
	assert.Equal(t, []int64{12, 11}, resp.Facility.CourtIDs)
	require.Len(t, resp.Courts, 2)
	assert.Equal(t, int64(12), resp.Courts[0].CourtID)
	assert.Len(t, resp.Labels, 38)
	assert.Len(t, resp.Courts[0].Statuses, 38)

	assert.Equal(t, domain.SlotLocked, statusAt(t, resp, 11, "05:00"))
	assert.Equal(t, domain.SlotLocked, statusAt(t, resp, 11, "05:30"))
	assert.Equal(t, domain.SlotAvailable, statusAt(t, resp, 11, "06:00"))
	assert.Equal(t, domain.SlotBooked, statusAt(t, resp, 11, "10:00"))
	assert.Equal(t, domain.SlotBooked, statusAt(t, resp, 11, "10:30"))
	assert.Equal(t, domain.SlotAvailable, statusAt(t, resp, 11, "11:00"))
	assert.Equal(t, domain.SlotAvailable, statusAt(t, resp, 12, "10:00"))
}

func TestExecute_FutureDateHasNoLockedSlots(t *testing.T) {
	client := newFakeClient()
	client.intervals = nil
	uc := newTestUseCase(client)

	resp, err := uc.Execute(context.Background(), &Request{FacilityID: 7, Date: today.AddDate(0, 0, 1)})
	require.NoError(t, err)

	for _, row := range resp.Courts {
		for _, status := range row.Statuses {
			assert.Equal(t, domain.SlotAvailable, status)
		}
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeClient())

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 0, Date: today})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{FacilityID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{FacilityID: 7, Date: today.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_FacilityNotFound(t *testing.T) {
	client := newFakeClient()
	client.facilityErr = courtClient.ErrFacilityNotFound
	uc := newTestUseCase(client)

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 7, Date: today})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestExecute_BackendFailure(t *testing.T) {
	client := newFakeClient()
	client.intervalErr = errors.New("connection refused")
	uc := newTestUseCase(client)

	_, err := uc.Execute(context.Background(), &Request{FacilityID: 7, Date: today})
	assert.ErrorIs(t, err, ErrInternal)
}

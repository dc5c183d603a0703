package courtapi

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// FacilitySource источник площадки, её кортов и занятости
type FacilitySource interface {
	GetFacility(ctx context.Context, facilityID int64) (*domain.Facility, error)
	GetCourts(ctx context.Context, facilityID int64) ([]int64, error)
	GetBookedIntervals(ctx context.Context, facilityID int64, date time.Time) (domain.BookedIntervals, error)
}

// LoadFacility параллельно загружает площадку, корты и занятость на дату
// Ошибки источника возвращаются как есть, первая из них отменяет остальные запросы
func LoadFacility(ctx context.Context, src FacilitySource, facilityID int64, day time.Time) (*domain.Facility, domain.BookedIntervals, error) {
	var (
		facility  *domain.Facility
		courtIDs  []int64
		intervals domain.BookedIntervals
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		facility, err = src.GetFacility(gctx, facilityID)
		return err
	})
	g.Go(func() error {
		var err error
		courtIDs, err = src.GetCourts(gctx, facilityID)
		return err
	})
	g.Go(func() error {
		var err error
		intervals, err = src.GetBookedIntervals(gctx, facilityID, day)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	facility.CourtIDs = courtIDs
	return facility, intervals, nil
}

package get_court_grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	courtClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/courtapi"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Config параметры сетки
type Config struct {
	Labels      []types.TimeString
	LockHorizon time.Duration
	Location    *time.Location
}

// UseCase use case для получения сетки статусов без сессии выбора
type UseCase struct {
	client       CourtAPIClient
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client CourtAPIClient,
	cfg Config,
	logger Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(cfg.Labels) == 0 {
		cfg.Labels = slotgrid.DefaultLabels()
	}
	return &UseCase{
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}
}

// Execute выполняет use case получения сетки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCourtGrid: facility=%d, date=%s", req.FacilityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCourtGrid: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и нормализуем дату
	now := uc.timeProvider.Now()
	day, err := slotgrid.Day(req.Date, now, uc.cfg.Location)
	if err != nil {
		uc.logger.Warn("GetCourtGrid: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Параллельно загружаем площадку, корты и занятость
	facility, intervals, err := courtClient.LoadFacility(ctx, uc.client, req.FacilityID, day)
	if err != nil {
		if errors.Is(err, courtClient.ErrFacilityNotFound) {
			uc.logger.Warn("GetCourtGrid: facility id=%d not found", req.FacilityID)
			return nil, ErrFacilityNotFound
		}
		uc.logger.Error("GetCourtGrid: failed to load facility id=%d: %v", req.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to load facility: %v", ErrInternal, err)
	}

	// 4. Вычисляем статусы всех слотов
	snapshot := slotgrid.Snapshot{
		Date:        day,
		Intervals:   intervals,
		Now:         now,
		LockHorizon: uc.cfg.LockHorizon,
	}
	rows := snapshot.Grid(facility.CourtIDs, uc.cfg.Labels, domain.SelectedRange{})

	courts := make([]CourtRow, len(rows))
	for i, row := range rows {
		courts[i] = CourtRow{CourtID: row.CourtID, Statuses: row.Statuses}
	}

	uc.logger.Info("GetCourtGrid: facility id=%d, courts=%d, slots=%d", req.FacilityID, len(courts), len(uc.cfg.Labels))

	return &Response{
		Facility:    *facility,
		Date:        day,
		Labels:      uc.cfg.Labels,
		Courts:      courts,
		GeneratedAt: now,
	}, nil
}

package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/session"
	courtClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/courtapi"
	"github.com/m04kA/SMC-CourtBooking/internal/selection"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Исходы для метрик
const (
	resultOK      = "ok"
	resultFailed  = "failed"
	resultStale   = "stale"
	resultRefused = "refused"
)

const msgPriceUnavailable = "не удалось получить цену, измените выбор или повторите позже"

const (
	// settleTimeout время на сохранение ответа бэкенда, когда запрос клиента уже отменён
	settleTimeout = 5 * time.Second

	defaultPendingTimeout = 30 * time.Second
)

// Config параметры сетки
// PendingTimeout - срок, после которого незавершённое обновление или запрос цены
// считаются неудавшимися; должен превышать таймаут бэкенда
type Config struct {
	Labels         []types.TimeString
	LockHorizon    time.Duration
	Location       *time.Location
	PendingTimeout time.Duration
}

// Service сервис сессий выбора слотов
// Изменения одной сессии сериализуются; запросы к бэкенду выполняются вне блокировки
type Service struct {
	repo         SessionRepository
	client       CourtAPIClient
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
	locks        *keyedMutex
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	repo SessionRepository,
	client CourtAPIClient,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(cfg.Labels) == 0 {
		cfg.Labels = slotgrid.DefaultLabels()
	}
	if cfg.PendingTimeout <= 0 {
		cfg.PendingTimeout = defaultPendingTimeout
	}
	return &Service{
		repo:         repo,
		client:       client,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
		locks:        newKeyedMutex(),
	}
}

// Start открывает сессию на площадке и дату: загружает площадку, корты и занятость,
// активным становится первый корт, выбор пуст
func (s *Service) Start(ctx context.Context, userID, facilityID int64, date time.Time) (*models.SessionResponse, error) {
	s.logger.Info("Start: user=%d, facility=%d, date=%s", userID, facilityID, date.Format(domain.DateFormat))

	if userID <= 0 || facilityID <= 0 {
		return nil, fmt.Errorf("%w: user and facility ids must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	day, err := s.validateDate(date, now)
	if err != nil {
		s.logger.Warn("Start: invalid date for user=%d: %v", userID, err)
		return nil, err
	}

	facility, intervals, err := courtClient.LoadFacility(ctx, s.client, facilityID, day)
	if err != nil {
		if errors.Is(err, courtClient.ErrFacilityNotFound) {
			s.logger.Warn("Start: facility id=%d not found", facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Start: failed to load facility id=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: failed to load facility: %v", ErrInternal, err)
	}

	courtID, _ := facility.FirstCourt()
	ctrl := selection.New(s.cfg.Labels, courtID)

	sess := &domain.BookingSession{
		ID:         uuid.NewString(),
		UserID:     userID,
		FacilityID: facilityID,
		Facility:   *facility,
		Date:       day,
		Intervals:  intervals,
		LoadedAt:   now,
		Selection:  ctrl.State(),
		CreatedAt:  now,
	}

	if err := s.save(ctx, sess, now); err != nil {
		return nil, err
	}

	s.logger.Info("Start: session id=%s created for user=%d, facility=%d, courts=%d",
		sess.ID, userID, facilityID, len(facility.CourtIDs))
	return s.view(sess, ctrl, now), nil
}

// Get возвращает состояние сессии со статусами, вычисленными на текущий момент
func (s *Service) Get(ctx context.Context, id string, userID int64) (*models.SessionResponse, error) {
	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return s.view(sess, s.controller(sess), s.timeProvider.Now()), nil
}

// SelectCourt делает корт активным и сбрасывает выбор
func (s *Service) SelectCourt(ctx context.Context, id string, userID, courtID int64) (*models.SessionResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !sess.Facility.HasCourt(courtID) {
		s.logger.Warn("SelectCourt: court id=%d not in facility id=%d", courtID, sess.FacilityID)
		return nil, ErrCourtNotFound
	}

	now := s.timeProvider.Now()
	ctrl := s.controller(sess)
	ctrl.SelectCourt(courtID)
	sess.Selection = ctrl.State()

	if err := s.save(ctx, sess, now); err != nil {
		return nil, err
	}

	s.logger.Info("SelectCourt: session id=%s switched to court id=%d", id, courtID)
	return s.view(sess, ctrl, now), nil
}

// Clear сбрасывает выбор
func (s *Service) Clear(ctx context.Context, id string, userID int64) (*models.SessionResponse, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	ctrl := s.controller(sess)
	ctrl.Clear()
	sess.Selection = ctrl.State()

	if err := s.save(ctx, sess, now); err != nil {
		return nil, err
	}

	return s.view(sess, ctrl, now), nil
}

// Click обрабатывает клик по ячейке активного корта
// Отказ в клике не является ошибкой и возвращается в Outcome.
// Если зафиксированный выбор можно оценить, цена запрашивается синхронно;
// ответ применяется, только если выбор не изменился за время запроса
func (s *Service) Click(ctx context.Context, id string, userID int64, slot types.TimeString) (*models.ClickResponse, error) {
	unlock := s.locks.Lock(id)

	sess, err := s.load(ctx, id, userID)
	if err != nil {
		unlock()
		return nil, err
	}

	if sess.Refreshing {
		unlock()
		s.metrics.ObserveClick(resultRefused)
		s.logger.Warn("Click: session id=%s is refreshing, click at %s refused", id, slot)
		return nil, ErrGridRefreshing
	}

	if len(sess.Facility.CourtIDs) == 0 {
		unlock()
		return nil, ErrCourtNotFound
	}

	now := s.timeProvider.Now()
	ctrl := s.controller(sess)
	outcome := ctrl.Click(slot, s.snapshot(sess, now))
	s.metrics.ObserveClick(string(outcome.Kind))

	var (
		priceReq selection.PriceRequest
		pricing  bool
	)
	if outcome.Kind == selection.OutcomeCommitted {
		priceReq, pricing = ctrl.BeginPricing(sess.Date)
	}
	if pricing {
		sess.PriceRequestedAt = now
	}
	sess.Selection = ctrl.State()

	if err := s.save(ctx, sess, now); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	s.logger.Info("Click: session id=%s court=%d slot=%s outcome=%s reason=%s slots=%d",
		id, ctrl.CourtID(), slot, outcome.Kind, outcome.Reason, len(ctrl.Slots()))

	if pricing {
		s.lookupPrice(ctx, id, userID, priceReq)
	}

	view, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	return &models.ClickResponse{
		Outcome: string(outcome.Kind),
		Reason:  string(outcome.Reason),
		Session: *view,
	}, nil
}

// Refresh перезагружает занятость кортов на текущую дату
func (s *Service) Refresh(ctx context.Context, id string, userID int64) (*models.SessionResponse, error) {
	token, err := s.beginRefresh(ctx, id, userID, time.Time{})
	if err != nil {
		return nil, err
	}
	return s.completeRefresh(ctx, id, userID, token)
}

// ChangeDate переключает сессию на другую дату: выбор сбрасывается,
// занятость загружается заново. При ошибке загрузки дата не меняется
func (s *Service) ChangeDate(ctx context.Context, id string, userID int64, date time.Time) (*models.SessionResponse, error) {
	day, err := s.validateDate(date, s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("ChangeDate: invalid date for session id=%s: %v", id, err)
		return nil, err
	}

	token, err := s.beginRefresh(ctx, id, userID, day)
	if err != nil {
		return nil, err
	}
	return s.completeRefresh(ctx, id, userID, token)
}

// refreshToken составной ключ обновления; ответ, чей ключ устарел, отбрасывается
type refreshToken struct {
	seq        uint64
	facilityID int64
	date       time.Time
}

func (s *Service) beginRefresh(ctx context.Context, id string, userID int64, date time.Time) (refreshToken, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return refreshToken{}, err
	}

	target := sess.Date
	if !date.IsZero() {
		target = date
		if !date.Equal(sess.Date) {
			ctrl := s.controller(sess)
			ctrl.Clear()
			sess.Selection = ctrl.State()
		}
	}

	now := s.timeProvider.Now()
	sess.RefreshSeq++
	sess.Refreshing = true
	sess.PendingDate = target
	sess.RefreshStartedAt = now

	if err := s.save(ctx, sess, now); err != nil {
		return refreshToken{}, err
	}

	return refreshToken{seq: sess.RefreshSeq, facilityID: sess.FacilityID, date: target}, nil
}

func (s *Service) completeRefresh(ctx context.Context, id string, userID int64, token refreshToken) (*models.SessionResponse, error) {
	intervals, fetchErr := s.client.GetBookedIntervals(ctx, token.facilityID, token.date)

	sctx, cancel := settle(ctx)
	defer cancel()

	unlock := s.locks.Lock(id)

	sess, err := s.load(sctx, id, userID)
	if err != nil {
		unlock()
		return nil, err
	}

	now := s.timeProvider.Now()
	ctrl := s.controller(sess)

	if sess.RefreshSeq != token.seq || sess.FacilityID != token.facilityID {
		unlock()
		s.metrics.ObserveRefresh(resultStale)
		s.logger.Info("Refresh: session id=%s discarded stale intervals for %s (seq=%d, current=%d)",
			id, token.date.Format(domain.DateFormat), token.seq, sess.RefreshSeq)
		return s.view(sess, ctrl, now), nil
	}

	sess.Refreshing = false
	sess.PendingDate = time.Time{}

	if fetchErr != nil {
		s.metrics.ObserveRefresh(resultFailed)
		if err := s.save(sctx, sess, now); err != nil {
			s.logger.Error("Refresh: failed to reset refreshing flag for session id=%s: %v", id, err)
		}
		unlock()

		if errors.Is(fetchErr, courtClient.ErrFacilityNotFound) {
			s.logger.Warn("Refresh: facility id=%d not found", token.facilityID)
			return nil, ErrFacilityNotFound
		}
		s.logger.Error("Refresh: failed to fetch intervals for session id=%s: %v", id, fetchErr)
		return nil, fmt.Errorf("%w: failed to fetch booked intervals: %v", ErrInternal, fetchErr)
	}

	sess.Date = token.date
	sess.Intervals = intervals
	sess.LoadedAt = now
	s.dropObstructedSelection(sess, ctrl, now)

	var (
		priceReq selection.PriceRequest
		pricing  bool
	)
	if _, priced := ctrl.Price(); ctrl.CanPrice() && !priced {
		priceReq, pricing = ctrl.BeginPricing(sess.Date)
	}
	if pricing {
		sess.PriceRequestedAt = now
	}
	sess.Selection = ctrl.State()

	if err := s.save(sctx, sess, now); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	s.metrics.ObserveRefresh(resultOK)
	s.logger.Info("Refresh: session id=%s loaded intervals for %s (courts with bookings=%d)",
		id, sess.Date.Format(domain.DateFormat), len(intervals))

	if pricing {
		s.lookupPrice(ctx, id, userID, priceReq)
		return s.Get(ctx, id, userID)
	}

	return s.view(sess, ctrl, now), nil
}

// dropObstructedSelection сбрасывает выбор, если новые данные закрыли хотя бы один его слот
func (s *Service) dropObstructedSelection(sess *domain.BookingSession, ctrl *selection.Controller, now time.Time) {
	snap := s.snapshot(sess, now)
	for _, slot := range ctrl.Slots() {
		if snap.IsBlocked(ctrl.CourtID(), slot) {
			s.logger.Info("Refresh: session id=%s selection obstructed at %s, clearing", sess.ID, slot)
			ctrl.Clear()
			return
		}
	}
}

// lookupPrice запрашивает цену вне блокировки и применяет ответ по токену
// Ошибка запроса не возвращается: цена сбрасывается, а сессия помечается ошибкой цены
func (s *Service) lookupPrice(ctx context.Context, id string, userID int64, req selection.PriceRequest) {
	amount, priceErr := s.client.GetPrice(ctx, req.CourtID, req.Start, req.End)

	sctx, cancel := settle(ctx)
	defer cancel()

	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(sctx, id, userID)
	if err != nil {
		s.logger.Warn("lookupPrice: session id=%s unavailable: %v", id, err)
		return
	}

	ctrl := s.controller(sess)

	if priceErr != nil {
		s.logger.Warn("lookupPrice: session id=%s court=%d failed: %v", id, req.CourtID, priceErr)
		if !ctrl.FailPricing(req.Token) {
			s.metrics.ObservePriceLookup(resultStale)
			return
		}
		s.metrics.ObservePriceLookup(resultFailed)
		sess.PriceFailedToken = req.Token
	} else {
		if !ctrl.ApplyPrice(req.Token, amount) {
			s.metrics.ObservePriceLookup(resultStale)
			s.logger.Info("lookupPrice: session id=%s discarded stale price token=%d", id, req.Token)
			return
		}
		s.metrics.ObservePriceLookup(resultOK)
		s.logger.Info("lookupPrice: session id=%s court=%d price=%d", id, req.CourtID, amount)
	}

	sess.Selection = ctrl.State()
	if err := s.save(sctx, sess, s.timeProvider.Now()); err != nil {
		s.logger.Error("lookupPrice: failed to save session id=%s: %v", id, err)
	}
}

// PrepareSubmission проверяет, что выбор можно отправить, и возвращает черновик брони
func (s *Service) PrepareSubmission(ctx context.Context, id string, userID int64) (*domain.BookingDraft, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if sess.Refreshing {
		return nil, ErrGridRefreshing
	}

	ctrl := s.controller(sess)
	if !ctrl.CanSubmit() {
		s.logger.Warn("PrepareSubmission: session id=%s has %d slots committed=%v",
			id, len(ctrl.Slots()), ctrl.IsCommitted())
		return nil, ErrNotSubmittable
	}

	amount, priced := ctrl.Price()
	if !priced {
		return nil, ErrNotPriced
	}

	start, end, _ := ctrl.Window(sess.Date)

	return &domain.BookingDraft{
		SessionID:  sess.ID,
		UserID:     sess.UserID,
		FacilityID: sess.FacilityID,
		CourtID:    ctrl.CourtID(),
		Date:       sess.Date,
		StartAt:    start,
		EndAt:      end,
		Slots:      ctrl.Slots(),
		TotalPrice: amount,
	}, nil
}

// CompleteSubmission сбрасывает выбор после успешной брони и сразу отмечает
// забронированный интервал в загруженной занятости
func (s *Service) CompleteSubmission(ctx context.Context, id string, userID int64, courtID int64, booked domain.BookedInterval) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return err
	}

	ctrl := s.controller(sess)
	ctrl.Clear()
	sess.Selection = ctrl.State()

	if sess.Intervals == nil {
		sess.Intervals = make(domain.BookedIntervals)
	}
	sess.Intervals[courtID] = append(sess.Intervals[courtID], booked)

	return s.save(ctx, sess, s.timeProvider.Now())
}

// validateDate приводит дату к полуночи в часовом поясе площадок; прошедшие даты запрещены
func (s *Service) validateDate(date time.Time, now time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	day, err := slotgrid.Day(date, now, s.cfg.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %s: %v", ErrInvalidInput, date.Format(domain.DateFormat), err)
	}

	return day, nil
}

func (s *Service) load(ctx context.Context, id string, userID int64) (*domain.BookingSession, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("load: repository error for session id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrInternal, err)
	}

	if sess.UserID != userID {
		s.logger.Warn("load: access denied for user=%d to session id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.expirePending(sess, s.timeProvider.Now())
	return sess, nil
}

// expirePending снимает признаки запросов, не завершившихся за PendingTimeout:
// обновление считается неудавшимся, цена - не полученной. Поздний ответ отбрасывается как устаревший
func (s *Service) expirePending(sess *domain.BookingSession, now time.Time) {
	if sess.Refreshing && now.Sub(sess.RefreshStartedAt) > s.cfg.PendingTimeout {
		s.logger.Warn("load: session id=%s refresh seq=%d started at %s expired",
			sess.ID, sess.RefreshSeq, sess.RefreshStartedAt.Format(time.RFC3339))
		sess.RefreshSeq++
		sess.Refreshing = false
		sess.PendingDate = time.Time{}
	}

	price := sess.Selection.Price
	if price.Pending && now.Sub(sess.PriceRequestedAt) > s.cfg.PendingTimeout {
		s.logger.Warn("load: session id=%s price token=%d requested at %s expired",
			sess.ID, price.Token, sess.PriceRequestedAt.Format(time.RFC3339))
		ctrl := s.controller(sess)
		ctrl.FailPricing(price.Token)
		sess.Selection = ctrl.State()
		sess.PriceFailedToken = price.Token
	}
}

// settle контекст второй фазы запроса: ответ бэкенда фиксируется в сессии,
// даже если клиент уже отключился
func settle(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
}

func (s *Service) save(ctx context.Context, sess *domain.BookingSession, now time.Time) error {
	sess.UpdatedAt = now
	if err := s.repo.Save(ctx, sess); err != nil {
		s.logger.Error("save: repository error for session id=%s: %v", sess.ID, err)
		return fmt.Errorf("%w: failed to save session: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) controller(sess *domain.BookingSession) *selection.Controller {
	return selection.Restore(s.cfg.Labels, sess.Selection)
}

func (s *Service) snapshot(sess *domain.BookingSession, now time.Time) slotgrid.Snapshot {
	return slotgrid.Snapshot{
		Date:        sess.Date,
		Intervals:   sess.Intervals,
		Now:         now,
		LockHorizon: s.cfg.LockHorizon,
	}
}

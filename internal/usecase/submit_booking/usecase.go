package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	courtClient "github.com/m04kA/SMC-CourtBooking/internal/integrations/courtapi"
	sessionsService "github.com/m04kA/SMC-CourtBooking/internal/service/sessions"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

// Исходы для метрик
const (
	resultOK            = "ok"
	resultPaymentFailed = "payment_failed"
	resultConflict      = "conflict"
	resultRejected      = "rejected"
	resultFailed        = "failed"
)

const msgPaymentFailed = "бронь создана, но оплату провести не удалось"

const (
	// reservationTTL срок, после которого незавершённый резерв не блокирует интервал
	reservationTTL = 2 * time.Minute

	// completionTimeout время на создание брони и оплату после записи резерва
	completionTimeout = 30 * time.Second
)

// UseCase use case для отправки зафиксированного выбора в бэкенд
type UseCase struct {
	sessions     SessionService
	client       CourtAPIClient
	bookingRepo  BookingRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	lockHorizon  time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionService,
	client CourtAPIClient,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	metrics Metrics,
	lockHorizon time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		client:       client,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		lockHorizon:  lockHorizon,
	}
}

// Execute выполняет use case отправки брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: user=%d, session=%s", req.UserID, req.SessionID)

	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveSubmission(submissionResult(resp, err))

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Берём зафиксированный выбор из сессии
	draft, err := uc.sessions.PrepareSubmission(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, uc.mapSessionError(req, err)
	}

	// 3. Перепроверяем выбор по свежей занятости
	intervals, err := uc.client.GetBookedIntervals(ctx, draft.FacilityID, draft.Date)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to refresh intervals for facility id=%d: %v", draft.FacilityID, err)
		return nil, fmt.Errorf("%w: failed to refresh intervals: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	snapshot := slotgrid.Snapshot{
		Date:        draft.Date,
		Intervals:   intervals,
		Now:         now,
		LockHorizon: uc.lockHorizon,
	}
	if err := validateSlotsFree(draft, snapshot); err != nil {
		uc.logger.Warn("SubmitBooking: %v", err)
		return nil, err
	}

	note := ""
	if req.Note != nil {
		note = *req.Note
	}

	// Переменная для хранения результата
	var result *domain.CourtBooking

	// 4. Резервируем интервал в журнале в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем пересечения с бронями, отправленными через этот сервис
		overlapping, err := uc.bookingRepo.CountOverlapping(txCtx, draft.CourtID, draft.StartAt, draft.EndAt, now.Add(-reservationTTL))
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to count overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to count overlapping bookings: %v", ErrInternal, err)
		}
		if overlapping > 0 {
			uc.logger.Warn("SubmitBooking: court id=%d already has %d bookings in %s-%s",
				draft.CourtID, overlapping, draft.StartAt.Format(domain.TimeFormat), draft.EndAt.Format(domain.TimeFormat))
			return ErrSlotNotAvailable
		}

		// 4.2. Записываем резерв
		created, err := uc.bookingRepo.Create(txCtx, &domain.CourtBooking{
			SessionID:  draft.SessionID,
			UserID:     draft.UserID,
			FacilityID: draft.FacilityID,
			CourtID:    draft.CourtID,
			StartAt:    draft.StartAt,
			EndAt:      draft.EndAt,
			TotalPrice: draft.TotalPrice,
			Note:       req.Note,
			Status:     domain.StatusReserving,
		})
		if err != nil {
			uc.logger.Error("SubmitBooking: failed to save reservation for court id=%d: %v", draft.CourtID, err)
			return fmt.Errorf("%w: failed to save reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("SubmitBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// Резерв записан: дальнейшие шаги не прерываются отключением клиента
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), completionTimeout)
	defer cancel()

	// 5. Создаём бронь в бэкенде
	externalID, err := uc.client.CreateBooking(ctx, draft.CourtID, note, draft.TotalPrice, draft.StartAt, draft.EndAt)
	if err != nil {
		uc.releaseReservation(ctx, result.ID)
		if errors.Is(err, courtClient.ErrSlotUnavailable) {
			uc.logger.Warn("SubmitBooking: backend rejected court id=%d: %v", draft.CourtID, err)
			return nil, ErrSlotNotAvailable
		}
		uc.logger.Error("SubmitBooking: failed to create booking at backend: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	result.ExternalBookingID = externalID
	result.Status = domain.StatusPendingPayment

	// 6. Связываем резерв с бронью бэкенда
	if err := uc.bookingRepo.AttachExternalBooking(ctx, result.ID, externalID); err != nil {
		uc.logger.Error("SubmitBooking: external booking id=%d is not linked to booking id=%d: %v",
			externalID, result.ID, err)
	}

	uc.logger.Info("SubmitBooking: created booking id=%d, external id=%d", result.ID, result.ExternalBookingID)

	// 7. Проводим оплату отдельным запросом
	var paymentError *string
	paymentURL, err := uc.client.CapturePayment(ctx, result.ExternalBookingID)
	if err != nil {
		uc.logger.Error("SubmitBooking: payment failed for external booking id=%d: %v", result.ExternalBookingID, err)
		result.Status = domain.StatusPaymentFailed
		result.PaymentURL = nil
		paymentError = ptr.Ptr(msgPaymentFailed)
	} else {
		result.Status = domain.StatusPaid
		result.PaymentURL = ptr.NilIfZero(paymentURL)
	}

	if err := uc.bookingRepo.UpdatePayment(ctx, result.ID, result.Status, result.PaymentURL); err != nil {
		uc.logger.Error("SubmitBooking: failed to update payment status for booking id=%d: %v", result.ID, err)
	}

	// 8. Сбрасываем выбор и отмечаем интервал занятым
	booked := domain.BookedInterval{Start: result.StartAt, End: result.EndAt}
	if err := uc.sessions.CompleteSubmission(ctx, req.SessionID, req.UserID, result.CourtID, booked); err != nil {
		uc.logger.Warn("SubmitBooking: failed to reset session id=%s: %v", req.SessionID, err)
	}

	slots := make([]string, len(draft.Slots))
	for i, slot := range draft.Slots {
		slots[i] = slot.String()
	}

	return &Response{
		ID:                result.ID,
		ExternalBookingID: result.ExternalBookingID,
		FacilityID:        result.FacilityID,
		CourtID:           result.CourtID,
		StartAt:           result.StartAt,
		EndAt:             result.EndAt,
		Slots:             slots,
		TotalPrice:        result.TotalPrice,
		Note:              result.Note,
		Status:            string(result.Status),
		PaymentURL:        result.PaymentURL,
		PaymentError:      paymentError,
		CreatedAt:         result.CreatedAt,
	}, nil
}

// releaseReservation освобождает интервал, если бэкенд бронь не создал
func (uc *UseCase) releaseReservation(ctx context.Context, id int64) {
	if err := uc.bookingRepo.UpdateStatus(ctx, id, domain.StatusRejected); err != nil {
		uc.logger.Error("SubmitBooking: failed to release reservation id=%d: %v", id, err)
	}
}

// mapSessionError переводит ошибки сервиса сессий в ошибки use case
func (uc *UseCase) mapSessionError(req *Request, err error) error {
	switch {
	case errors.Is(err, sessionsService.ErrSessionNotFound):
		uc.logger.Warn("SubmitBooking: session id=%s not found", req.SessionID)
		return ErrSessionNotFound
	case errors.Is(err, sessionsService.ErrAccessDenied):
		return ErrAccessDenied
	case errors.Is(err, sessionsService.ErrGridRefreshing):
		return ErrGridRefreshing
	case errors.Is(err, sessionsService.ErrNotSubmittable):
		return ErrNotSubmittable
	case errors.Is(err, sessionsService.ErrNotPriced):
		return ErrNotPriced
	default:
		uc.logger.Error("SubmitBooking: failed to prepare session id=%s: %v", req.SessionID, err)
		return fmt.Errorf("%w: failed to prepare submission: %v", ErrInternal, err)
	}
}

func submissionResult(resp *Response, err error) string {
	switch {
	case err == nil && resp.PaymentError != nil:
		return resultPaymentFailed
	case err == nil:
		return resultOK
	case errors.Is(err, ErrSlotNotAvailable):
		return resultConflict
	case errors.Is(err, ErrInternal):
		return resultFailed
	default:
		return resultRejected
	}
}

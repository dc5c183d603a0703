package sessions

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/selection"
	"github.com/m04kA/SMC-CourtBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

// view строит ответ: статусы всех кортов вычисляются заново на момент now
func (s *Service) view(sess *domain.BookingSession, ctrl *selection.Controller, now time.Time) *models.SessionResponse {
	rows := s.snapshot(sess, now).Grid(sess.Facility.CourtIDs, s.cfg.Labels, ctrl.Selection())

	courts := make([]models.CourtRowResponse, len(rows))
	for i, row := range rows {
		statuses := make([]string, len(row.Statuses))
		for j, status := range row.Statuses {
			statuses[j] = string(status)
		}
		courts[i] = models.CourtRowResponse{CourtID: row.CourtID, Statuses: statuses}
	}

	labels := make([]string, len(s.cfg.Labels))
	for i, label := range s.cfg.Labels {
		labels[i] = label.String()
	}

	resp := &models.SessionResponse{
		ID:         sess.ID,
		Facility:   models.FromDomainFacility(sess.Facility),
		Date:       sess.Date.Format(domain.DateFormat),
		Labels:     labels,
		Courts:     courts,
		Selection:  s.selectionView(sess, ctrl),
		Refreshing: sess.Refreshing,
		LoadedAt:   models.FormatLoadedAt(sess.LoadedAt),
	}
	if sess.Refreshing && !sess.PendingDate.IsZero() {
		resp.PendingDate = ptr.Ptr(sess.PendingDate.Format(domain.DateFormat))
	}

	return resp
}

func (s *Service) selectionView(sess *domain.BookingSession, ctrl *selection.Controller) models.SelectionResponse {
	slots := ctrl.Slots()
	labels := make([]string, len(slots))
	for i, slot := range slots {
		labels[i] = slot.String()
	}

	resp := models.SelectionResponse{
		CourtID:      ctrl.CourtID(),
		Phase:        ctrl.Phase().Name(),
		Slots:        labels,
		TotalHours:   ctrl.TotalHours(),
		PricePending: ctrl.PricePending(),
		CanPrice:     ctrl.CanPrice(),
		CanSubmit:    ctrl.CanSubmit(),
	}

	if p, ok := ctrl.Phase().(selection.Anchoring); ok {
		resp.Anchor = ptr.Ptr(p.Anchor.String())
	}

	if start, end, ok := ctrl.Window(sess.Date); ok {
		resp.StartTime = ptr.Ptr(start.Format(domain.TimeFormat))
		resp.EndTime = ptr.Ptr(end.Format(domain.TimeFormat))
	}

	if amount, priced := ctrl.Price(); priced {
		resp.Price = ptr.Ptr(amount)
	} else if priceFailed(sess) {
		resp.PriceError = ptr.Ptr(msgPriceUnavailable)
	}

	return resp
}

// priceFailed ошибка цены актуальна, пока токен выбора не изменился
func priceFailed(sess *domain.BookingSession) bool {
	price := sess.Selection.Price
	return sess.PriceFailedToken != 0 &&
		sess.PriceFailedToken == price.Token &&
		!price.Pending &&
		!price.Priced
}

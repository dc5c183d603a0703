package submit_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Note != nil && utf8.RuneCountInString(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}

// validateSlotsFree проверяет по свежей занятости, что ни один слот выбора
// не занят и не заблокирован по времени
func validateSlotsFree(draft *domain.BookingDraft, snapshot slotgrid.Snapshot) error {
	for _, slot := range draft.Slots {
		if snapshot.IsBlocked(draft.CourtID, slot) {
			return fmt.Errorf("%w: court %d slot %s", ErrSlotNotAvailable, draft.CourtID, slot)
		}
	}
	return nil
}

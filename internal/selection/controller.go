package selection

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/slotgrid"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// View живые данные сетки, по которым проверяются клики
// slotgrid.Snapshot удовлетворяет этому интерфейсу
type View interface {
	IsBlocked(courtID int64, label types.TimeString) bool
}

// OutcomeKind результат обработки клика
type OutcomeKind string

const (
	OutcomeAnchored  OutcomeKind = "anchored"
	OutcomeCommitted OutcomeKind = "committed"
	OutcomeRejected  OutcomeKind = "rejected"
)

// RejectReason причина отказа в клике
type RejectReason string

const (
	ReasonNone            RejectReason = ""
	ReasonUnknownSlot     RejectReason = "unknown_slot"
	ReasonSlotBlocked     RejectReason = "slot_blocked"
	ReasonRangeObstructed RejectReason = "range_obstructed"
)

// Outcome результат клика; отказ не является ошибкой
type Outcome struct {
	Kind   OutcomeKind
	Reason RejectReason
}

// Accepted true, если клик изменил выбор в ожидаемую сторону
func (o Outcome) Accepted() bool {
	return o.Kind != OutcomeRejected
}

// Controller конечный автомат выбора диапазона слотов двумя кликами
// на одном корте. Не потокобезопасен, сериализацию обеспечивает владелец
type Controller struct {
	labels  []types.TimeString
	courtID int64
	phase   Phase
	slots   []types.TimeString
	price   PriceState
}

// New создает контроллер в состоянии Idle с пустым выбором
func New(labels []types.TimeString, courtID int64) *Controller {
	return &Controller{
		labels:  labels,
		courtID: courtID,
		phase:   Idle{},
	}
}

// Click обрабатывает клик по ячейке активного корта
//
// Idle -> Anchoring: слот не должен быть booked/locked, выбор := {slot}
// Anchoring -> Idle: фиксируется диапазон между якорем и slot включительно
// (порядок кликов не важен); если хоть один слот диапазона заблокирован
// по текущим данным view, выбор очищается
func (c *Controller) Click(slot types.TimeString, view View) Outcome {
	idx := slotgrid.IndexOf(c.labels, slot)
	if idx < 0 {
		return Outcome{Kind: OutcomeRejected, Reason: ReasonUnknownSlot}
	}

	switch p := c.phase.(type) {
	case Anchoring:
		return c.commit(p.Anchor, idx, view)
	default:
		if view.IsBlocked(c.courtID, slot) {
			return Outcome{Kind: OutcomeRejected, Reason: ReasonSlotBlocked}
		}
		c.phase = Anchoring{Anchor: slot}
		c.slots = []types.TimeString{slot}
		c.invalidatePrice()
		return Outcome{Kind: OutcomeAnchored}
	}
}

func (c *Controller) commit(anchor types.TimeString, idx int, view View) Outcome {
	anchorIdx := slotgrid.IndexOf(c.labels, anchor)
	if anchorIdx < 0 {
		// Якорь из другой сетки (например, после смены настроек) - начинаем заново
		c.reset()
		return Outcome{Kind: OutcomeRejected, Reason: ReasonUnknownSlot}
	}

	lo, hi := anchorIdx, idx
	if lo > hi {
		lo, hi = hi, lo
	}

	rng := make([]types.TimeString, 0, hi-lo+1)
	for _, label := range c.labels[lo : hi+1] {
		if view.IsBlocked(c.courtID, label) {
			c.reset()
			return Outcome{Kind: OutcomeRejected, Reason: ReasonRangeObstructed}
		}
		rng = append(rng, label)
	}

	c.phase = Idle{}
	c.slots = rng
	c.invalidatePrice()
	return Outcome{Kind: OutcomeCommitted}
}

// SelectCourt меняет активный корт и безусловно сбрасывает выбор
func (c *Controller) SelectCourt(courtID int64) {
	c.courtID = courtID
	c.reset()
}

// Clear безусловно возвращает автомат в Idle с пустым выбором
func (c *Controller) Clear() {
	c.reset()
}

func (c *Controller) reset() {
	c.phase = Idle{}
	c.slots = nil
	c.invalidatePrice()
}

// CourtID активный корт
func (c *Controller) CourtID() int64 {
	return c.courtID
}

// Phase текущая фаза
func (c *Controller) Phase() Phase {
	return c.phase
}

// Slots копия выбранных слотов в порядке сетки
func (c *Controller) Slots() []types.TimeString {
	out := make([]types.TimeString, len(c.slots))
	copy(out, c.slots)
	return out
}

// Selection выбор для вычисления статусов сетки
func (c *Controller) Selection() domain.SelectedRange {
	return domain.SelectedRange{CourtID: c.courtID, Slots: c.Slots()}
}

// IsCommitted выбор зафиксирован вторым кликом и не пуст
func (c *Controller) IsCommitted() bool {
	_, idle := c.phase.(Idle)
	return idle && len(c.slots) > 0
}

// TotalHours длительность выбора: каждый слот - полчаса
func (c *Controller) TotalHours() float64 {
	return float64(len(c.slots)) * domain.SlotHours
}

// CanPrice выбор можно оценить (минимум 2 слота)
func (c *Controller) CanPrice() bool {
	return c.IsCommitted() && len(c.slots) >= domain.MinPricedSlots
}

// CanSubmit выбор можно отправить (минимум 3 слота)
func (c *Controller) CanSubmit() bool {
	return c.IsCommitted() && len(c.slots) >= domain.MinSubmitSlots
}

// Window абсолютные границы выбора на дату date:
// начало первого слота и конец последнего
func (c *Controller) Window(date time.Time) (start, end time.Time, ok bool) {
	if len(c.slots) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start = c.slots[0].On(date)
	end = c.slots[len(c.slots)-1].On(date).Add(domain.SlotStepMinutes * time.Minute)
	return start, end, true
}

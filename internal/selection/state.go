package selection

import (
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// State сериализуемый снимок контроллера
type State = domain.SelectionState

// State снимок для сохранения
func (c *Controller) State() State {
	st := State{
		CourtID: c.courtID,
		Phase:   c.phase.Name(),
		Slots:   c.Slots(),
		Price:   c.price,
	}
	if p, ok := c.phase.(Anchoring); ok {
		st.Anchor = p.Anchor
	}
	return st
}

// Restore восстанавливает контроллер из снимка
// Неконсистентный снимок (Anchoring без якоря) восстанавливается как Idle с пустым выбором
func Restore(labels []types.TimeString, st State) *Controller {
	c := &Controller{
		labels:  labels,
		courtID: st.CourtID,
		phase:   Idle{},
		price:   st.Price,
	}

	if st.Phase == PhaseAnchoring {
		if st.Anchor.IsZero() {
			c.reset()
			return c
		}
		c.phase = Anchoring{Anchor: st.Anchor}
	}

	if len(st.Slots) > 0 {
		c.slots = append([]types.TimeString(nil), st.Slots...)
	}

	return c
}

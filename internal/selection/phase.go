package selection

import "github.com/m04kA/SMC-CourtBooking/pkg/types"

// Phase фаза жеста выбора из двух кликов: Idle или Anchoring
// Якорь существует только в Anchoring, поэтому "якорь без фазы" невыразим
type Phase interface {
	phase()
	Name() string
}

// Idle якорь не установлен
type Idle struct{}

// Anchoring первый клик зарегистрирован, ждём второй
type Anchoring struct {
	Anchor types.TimeString
}

func (Idle) phase()      {}
func (Anchoring) phase() {}

func (Idle) Name() string      { return PhaseIdle }
func (Anchoring) Name() string { return PhaseAnchoring }

const (
	PhaseIdle      = "idle"
	PhaseAnchoring = "anchoring"
)

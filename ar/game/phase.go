package game

import "fmt"

// Phase is the stage of a darts round.
type Phase int

const (
	// PhaseSearching shows detected walls and waits for the player to
	// pick one.
	PhaseSearching Phase = iota
	// PhaseConfirmingSelection waits for the player to confirm the picked
	// wall.
	PhaseConfirmingSelection
	// PhaseActive lets the player throw darts at the board.
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseConfirmingSelection:
		return "confirming-selection"
	case PhaseActive:
		return "active"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

var transitions = map[Phase][]Phase{
	PhaseSearching:           {PhaseConfirmingSelection},
	PhaseConfirmingSelection: {PhaseActive},
	PhaseActive:              {},
}

// CanTransition reports whether the round may move from one phase to the
// other.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Status is the text shown to the player.
type Status string

const (
	StatusSearching  Status = "Searching for walls"
	StatusConfirming Status = "Confirming selected wall"
	StatusPlaying    Status = "Playing darts"
	StatusError      Status = "Error!"
)

// Status returns the label shown while the round is in this phase.
func (p Phase) Status() Status {
	switch p {
	case PhaseSearching:
		return StatusSearching
	case PhaseConfirmingSelection:
		return StatusConfirming
	case PhaseActive:
		return StatusPlaying
	default:
		return StatusError
	}
}

// StatusReporter displays status labels.
type StatusReporter interface {
	SetStatus(status Status)
}

// StatusReporterFunc adapts a function to StatusReporter.
type StatusReporterFunc func(status Status)

func (f StatusReporterFunc) SetStatus(status Status) {
	f(status)
}

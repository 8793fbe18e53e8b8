// Package workflow implements the three-stage delivery flow (collect,
// deliver, return) layered over models.DeliveryStatus.
package workflow

import "entregador/models"

// Stage is a workflow phase index.
type Stage int

const (
	StageCollect Stage = iota
	StageDeliver
	StageReturn
)

func (s Stage) String() string {
	if s >= 0 && int(s) < len(Steps) {
		return Steps[s].ID
	}
	return "unknown"
}

// Step describes one stage as shown on the timeline.
type Step struct {
	ID          string
	Title       string
	Description string
	CanSkip     bool
	CanGoBack   bool
}

// Steps is indexed by Stage.
var Steps = []Step{
	{ID: "collect", Title: "Coleta do Produto", Description: "Retire os produtos no depósito", CanSkip: true},
	{ID: "deliver", Title: "Entrega ao Cliente", Description: "Entregue os produtos ao cliente"},
	{ID: "return", Title: "Devolução de Vasilhames", Description: "Colete os vasilhames vazios (se houver)", CanSkip: true, CanGoBack: true},
}

// StepStatus is how a timeline step renders.
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepActive    StepStatus = "active"
	StepPending   StepStatus = "pending"
)

// StepStatusFor derives the status of step index relative to current.
func StepStatusFor(index int, current Stage) StepStatus {
	switch {
	case index < int(current):
		return StepCompleted
	case index == int(current):
		return StepActive
	default:
		return StepPending
	}
}

// Timeline is the read model behind the progress indicator. Current is the
// stage on screen; Reached is the furthest one the delivery got to.
type Timeline struct {
	Current     Stage
	Reached     Stage
	Done        bool
	CanNavigate bool
}

func (t Timeline) StepStatus(i int) StepStatus { return StepStatusFor(i, t.Current) }

// IsStepClickable reports whether a press on step i may navigate.
func (t Timeline) IsStepClickable(i int) bool {
	limit := t.Reached
	if t.Current > limit {
		limit = t.Current
	}
	return t.CanNavigate && i >= 0 && i < len(Steps) && i <= int(limit)
}

// ShowSkip reports whether the current step offers skip. Nothing is
// skippable once the delivery is done.
func (t Timeline) ShowSkip() bool {
	return t.valid() && !t.Done && Steps[t.Current].CanSkip
}

// ShowGoBack reports whether the current step offers going back.
func (t Timeline) ShowGoBack() bool {
	return t.valid() && t.Current > 0 && Steps[t.Current].CanGoBack
}

func (t Timeline) valid() bool {
	return t.Current >= 0 && int(t.Current) < len(Steps)
}

// StageForStatus returns the stage a delivery in status resumes at.
// ok is false when the workflow has nothing left to do.
func StageForStatus(status models.DeliveryStatus, needsReturn bool) (stage Stage, ok bool) {
	switch status {
	case models.DeliveryStatusPending, models.DeliveryStatusCollecting:
		return StageCollect, true
	case models.DeliveryStatusPickedUp, models.DeliveryStatusDelivering, models.DeliveryStatusInTransit:
		return StageDeliver, true
	case models.DeliveryStatusDelivered:
		if needsReturn {
			return StageReturn, true
		}
		return StageDeliver, false
	case models.DeliveryStatusReturning:
		return StageReturn, true
	default:
		return StageReturn, false
	}
}

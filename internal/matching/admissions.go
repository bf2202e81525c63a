package matching

import (
	"sort"

	"career-service/internal/models"
)

// IntakePartition is the outcome of one admissions ranking pass: the
// transitions to apply plus the applications behind them.
type IntakePartition struct {
	Admitted []models.Application
	Waiting  []models.Application
}

// Transitions flattens the partition into the status changes an admissions
// run must commit as one atomic unit.
func (p *IntakePartition) Transitions() []models.StatusTransition {
	transitions := make([]models.StatusTransition, 0, len(p.Admitted)+len(p.Waiting))
	for _, app := range p.Admitted {
		transitions = append(transitions, models.StatusTransition{
			ApplicationID: app.ID,
			NewStatus:     models.StatusAdmitted,
		})
	}
	for _, app := range p.Waiting {
		transitions = append(transitions, models.StatusTransition{
			ApplicationID: app.ID,
			NewStatus:     models.StatusWaiting,
		})
	}
	return transitions
}

// PartitionIntake ranks pending applications by their stored score and
// splits them at the intake capacity: the top entries are admitted, the
// rest wait. Entries that are not pending are ignored, so a retried run
// never re-admits an application it already moved. Capacity zero or below
// means intake is paused and everything pending waits.
//
// The sort is stable; ties keep the input order, so the caller controls
// tie-breaking through its fetch order.
func PartitionIntake(pending []models.Application, capacity int) IntakePartition {
	eligible := make([]models.Application, 0, len(pending))
	for _, app := range pending {
		if app.Status == models.StatusPending {
			eligible = append(eligible, app)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Score > eligible[j].Score
	})

	if capacity < 0 {
		capacity = 0
	}
	if capacity > len(eligible) {
		capacity = len(eligible)
	}

	return IntakePartition{
		Admitted: eligible[:capacity],
		Waiting:  eligible[capacity:],
	}
}

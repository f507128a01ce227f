package applications

// Status is an application's position in the review lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusEvaluated Status = "evaluated"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
)

// TierPending is the placeholder tier letter before evaluation completes.
const TierPending = "pending"

// transitions maps each status to the statuses reachable from it. A terminal
// decision always requires a prior evaluation write, so pending never leads
// to accepted or rejected directly. Recruiters may reverse a terminal
// decision either way until an external irreversible action is taken.
var transitions = map[Status][]Status{
	StatusPending:   {StatusEvaluated},
	StatusEvaluated: {StatusAccepted, StatusRejected},
	StatusAccepted:  {StatusRejected},
	StatusRejected:  {StatusAccepted},
}

// evaluationSources lists the statuses from which an evaluation write is
// accepted. Terminal records stay as decided; a late evaluator callback must
// not demote an accepted or rejected application back to evaluated.
var evaluationSources = []Status{StatusPending, StatusEvaluated}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusEvaluated, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether a status change from one state to another is
// legal.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedSources returns the statuses from which the given status may be
// reached.
func AllowedSources(to Status) []Status {
	var out []Status
	for from, targets := range transitions {
		for _, t := range targets {
			if t == to {
				out = append(out, from)
			}
		}
	}
	return out
}

// EvaluationSources returns the statuses from which an evaluation write is
// accepted.
func EvaluationSources() []Status {
	return append([]Status(nil), evaluationSources...)
}

// CanEvaluate reports whether an evaluation write is accepted from the given
// status.
func CanEvaluate(from Status) bool {
	for _, s := range evaluationSources {
		if s == from {
			return true
		}
	}
	return false
}

package qdocs

import "fmt"

// RevisionStatus represents the workflow state of a drawing revision
type RevisionStatus string

const (
	RevisionStatusDraft       RevisionStatus = "Draft"
	RevisionStatusUnderReview RevisionStatus = "UnderReview"
	RevisionStatusApproved    RevisionStatus = "Approved"
	RevisionStatusRejected    RevisionStatus = "Rejected"
	RevisionStatusSuperseded  RevisionStatus = "Superseded"
)

// revisionTransitions is the fixed transition table of the revision workflow.
// Superseded is terminal and has no entry.
var revisionTransitions = map[RevisionStatus][]RevisionStatus{
	RevisionStatusDraft:       {RevisionStatusUnderReview, RevisionStatusApproved},
	RevisionStatusUnderReview: {RevisionStatusApproved, RevisionStatusRejected},
	RevisionStatusRejected:    {RevisionStatusDraft, RevisionStatusUnderReview},
	RevisionStatusApproved:    {RevisionStatusSuperseded},
}

// IsValid checks if the RevisionStatus is a valid value
func (s RevisionStatus) IsValid() bool {
	switch s {
	case RevisionStatusDraft, RevisionStatusUnderReview, RevisionStatusApproved,
		RevisionStatusRejected, RevisionStatusSuperseded:
		return true
	}
	return false
}

// String returns the string representation of RevisionStatus
func (s RevisionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status has no outgoing transitions
func (s RevisionStatus) IsTerminal() bool {
	return len(revisionTransitions[s]) == 0
}

// CanTransitionTo checks if the status can transition to the target status
func (s RevisionStatus) CanTransitionTo(target RevisionStatus) bool {
	for _, allowed := range revisionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from this one
func (s RevisionStatus) AllowedTransitions() []RevisionStatus {
	allowed := revisionTransitions[s]
	out := make([]RevisionStatus, len(allowed))
	copy(out, allowed)
	return out
}

// AllRevisionStatuses returns all valid RevisionStatus values
func AllRevisionStatuses() []RevisionStatus {
	return []RevisionStatus{
		RevisionStatusDraft, RevisionStatusUnderReview, RevisionStatusApproved,
		RevisionStatusRejected, RevisionStatusSuperseded,
	}
}

// ParseRevisionStatus converts a raw string into a RevisionStatus
func ParseRevisionStatus(s string) (RevisionStatus, bool) {
	status := RevisionStatus(s)
	return status, status.IsValid()
}

// ValidateTransitionTable sanity-checks the transition table at startup:
// every entry must reference valid statuses, every non-terminal status must
// have at least one outgoing edge, no status may transition to itself, and
// the terminal status must have none.
func ValidateTransitionTable() error {
	for from, targets := range revisionTransitions {
		if !from.IsValid() {
			return fmt.Errorf("transition table references unknown status %q", from)
		}
		for _, to := range targets {
			if !to.IsValid() {
				return fmt.Errorf("transition table references unknown target %q from %q", to, from)
			}
			if to == from {
				return fmt.Errorf("transition table contains self-loop on %q", from)
			}
		}
	}
	for _, status := range AllRevisionStatuses() {
		if status == RevisionStatusSuperseded {
			if len(revisionTransitions[status]) != 0 {
				return fmt.Errorf("terminal status %q must have no outgoing transitions", status)
			}
			continue
		}
		if len(revisionTransitions[status]) == 0 {
			return fmt.Errorf("non-terminal status %q has no outgoing transitions", status)
		}
	}
	return nil
}

package models

// Allowed lifecycle moves. Edits resetting a property to PENDING are not
// listed here; they are always allowed.
var propertyTransitions = map[PropertyStatus][]PropertyStatus{
	PropertyStatusPending:  {PropertyStatusApproved, PropertyStatusRejected},
	PropertyStatusApproved: {PropertyStatusSold, PropertyStatusRented},
}

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending: {
		ApplicationStatusUnderReview, ApplicationStatusApproved,
		ApplicationStatusRejected, ApplicationStatusWithdrawn,
	},
	ApplicationStatusUnderReview: {ApplicationStatusApproved, ApplicationStatusRejected},
}

var viewingTransitions = map[ViewingStatus][]ViewingStatus{
	ViewingStatusPending:  {ViewingStatusApproved, ViewingStatusRejected, ViewingStatusCancelled},
	ViewingStatusApproved: {ViewingStatusCompleted, ViewingStatusCancelled},
}

func (s PropertyStatus) CanTransitionTo(next PropertyStatus) bool {
	return contains(propertyTransitions[s], next)
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	return contains(applicationTransitions[s], next)
}

func (s ViewingStatus) CanTransitionTo(next ViewingStatus) bool {
	return contains(viewingTransitions[s], next)
}

// IsTerminal reports statuses with no modelled outgoing transition.
func (s PropertyStatus) IsTerminal() bool    { return len(propertyTransitions[s]) == 0 }
func (s ApplicationStatus) IsTerminal() bool { return len(applicationTransitions[s]) == 0 }
func (s ViewingStatus) IsTerminal() bool     { return len(viewingTransitions[s]) == 0 }

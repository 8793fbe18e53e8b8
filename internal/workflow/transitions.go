package workflow

import "entregador/models"

// TransitionContext carries the delivery facts a transition may depend on.
type TransitionContext struct {
	NeedsReturn bool
}

var transitions = map[models.DeliveryStatus][]models.DeliveryStatus{
	models.DeliveryStatusPending: {
		models.DeliveryStatusCollecting,
		models.DeliveryStatusPickedUp,
		models.DeliveryStatusCancelled,
		models.DeliveryStatusFailed,
	},
	models.DeliveryStatusCollecting: {
		models.DeliveryStatusPickedUp,
		models.DeliveryStatusCancelled,
		models.DeliveryStatusFailed,
	},
	models.DeliveryStatusPickedUp: {
		models.DeliveryStatusDelivering,
		models.DeliveryStatusInTransit,
		models.DeliveryStatusDelivered,
		models.DeliveryStatusCancelled,
		models.DeliveryStatusFailed,
	},
	models.DeliveryStatusDelivering: {
		models.DeliveryStatusInTransit,
		models.DeliveryStatusDelivered,
		models.DeliveryStatusCancelled,
		models.DeliveryStatusFailed,
	},
	models.DeliveryStatusInTransit: {
		models.DeliveryStatusDelivered,
		models.DeliveryStatusCancelled,
		models.DeliveryStatusFailed,
	},
	models.DeliveryStatusDelivered: {
		models.DeliveryStatusReturning,
		models.DeliveryStatusReturned,
	},
	models.DeliveryStatusReturning: {
		models.DeliveryStatusReturned,
		models.DeliveryStatusFailed,
	},
}

// IsLegalTransition reports whether a delivery may move from -> to.
// Staying in the same status is never a transition.
func IsLegalTransition(from, to models.DeliveryStatus, tc TransitionContext) bool {
	if from == to || !to.Valid() {
		return false
	}
	if from == models.DeliveryStatusDelivered && !tc.NeedsReturn {
		return false
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the legal targets from a status.
func NextStatuses(from models.DeliveryStatus, tc TransitionContext) []models.DeliveryStatus {
	var out []models.DeliveryStatus
	for _, s := range transitions[from] {
		if IsLegalTransition(from, s, tc) {
			out = append(out, s)
		}
	}
	return out
}

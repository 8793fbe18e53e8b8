package models

import "time"

// RouteStatus is the lifecycle of a driver's route.
type RouteStatus string

const (
	RouteStatusPlanned   RouteStatus = "planned"
	RouteStatusActive    RouteStatus = "active"
	RouteStatusCompleted RouteStatus = "completed"
	RouteStatusCancelled RouteStatus = "cancelled"
)

// Route groups deliveries for one driving session. It references deliveries
// by id and never caches how many of them are done.
type Route struct {
	ID              string      `json:"id"`
	DeliveryIDs     []string    `json:"deliveryIds"`
	StartLocation   Coordinates `json:"startLocation"`
	CurrentLocation Coordinates `json:"currentLocation"`
	Status          RouteStatus `json:"status"`
	// Durations are in minutes, distance in km.
	EstimatedDuration int        `json:"estimatedDuration"`
	ActualDuration    *int       `json:"actualDuration,omitempty"`
	Distance          float64    `json:"distance"`
	StartTime         *time.Time `json:"startTime,omitempty"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// Includes reports whether the route references delivery id.
func (r *Route) Includes(id string) bool {
	for _, v := range r.DeliveryIDs {
		if v == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (r Route) Clone() Route {
	out := r
	if r.DeliveryIDs != nil {
		out.DeliveryIDs = append([]string(nil), r.DeliveryIDs...)
	}
	if r.ActualDuration != nil {
		v := *r.ActualDuration
		out.ActualDuration = &v
	}
	out.StartTime = cloneTime(r.StartTime)
	out.EndTime = cloneTime(r.EndTime)
	return out
}

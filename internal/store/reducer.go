package store

import (
	"time"

	"entregador/models"
)

// State is everything the store owns.
type State struct {
	Deliveries   []models.Delivery
	CurrentRoute *models.Route
	IsLoading    bool
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{IsLoading: s.IsLoading}
	if s.Deliveries != nil {
		out.Deliveries = make([]models.Delivery, len(s.Deliveries))
		for i := range s.Deliveries {
			out.Deliveries[i] = s.Deliveries[i].Clone()
		}
	}
	if s.CurrentRoute != nil {
		r := s.CurrentRoute.Clone()
		out.CurrentRoute = &r
	}
	return out
}

// Command is a state change applied by Reduce.
type Command interface {
	command()
}

type SetLoading struct {
	Loading bool
}

// SetDeliveries replaces the whole collection.
type SetDeliveries struct {
	Deliveries []models.Delivery
}

// SetRoute replaces the current route; nil clears it.
type SetRoute struct {
	Route *models.Route
}

// UpdateDelivery applies Patch to delivery ID and stamps UpdatedAt with At.
type UpdateDelivery struct {
	ID    string
	Patch DeliveryPatch
	At    time.Time
}

func (SetLoading) command()     {}
func (SetDeliveries) command()  {}
func (SetRoute) command()       {}
func (UpdateDelivery) command() {}

// DeliveryPatch lists the fields an update may touch. Nil leaves a field as is.
type DeliveryPatch struct {
	Status      *models.DeliveryStatus
	DeliveredAt *time.Time
	PickupTime  *time.Time
	Photo       *string
	Signature   *string
	Notes       *string
}

func (p DeliveryPatch) apply(d *models.Delivery) {
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.DeliveredAt != nil {
		t := *p.DeliveredAt
		d.DeliveredAt = &t
	}
	if p.PickupTime != nil {
		t := *p.PickupTime
		d.PickupTime = &t
	}
	if p.Photo != nil {
		d.Photo = *p.Photo
	}
	if p.Signature != nil {
		d.Signature = *p.Signature
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
}

// Reduce returns the state after c. It never modifies s; an UpdateDelivery
// for an unknown id returns s unchanged.
func Reduce(s State, c Command) State {
	switch c := c.(type) {
	case SetLoading:
		s.IsLoading = c.Loading
		return s
	case SetDeliveries:
		next := make([]models.Delivery, len(c.Deliveries))
		for i := range c.Deliveries {
			next[i] = c.Deliveries[i].Clone()
		}
		s.Deliveries = next
		return s
	case SetRoute:
		if c.Route == nil {
			s.CurrentRoute = nil
			return s
		}
		r := c.Route.Clone()
		s.CurrentRoute = &r
		return s
	case UpdateDelivery:
		idx := indexOf(s.Deliveries, c.ID)
		if idx < 0 {
			return s
		}
		next := make([]models.Delivery, len(s.Deliveries))
		copy(next, s.Deliveries)
		d := next[idx].Clone()
		c.Patch.apply(&d)
		d.UpdatedAt = c.At
		next[idx] = d
		s.Deliveries = next
		return s
	default:
		return s
	}
}

func indexOf(list []models.Delivery, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

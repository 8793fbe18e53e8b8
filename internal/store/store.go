// Package store is the single owner of the delivery collection and the
// current route. All mutations go through Reduce under the store lock.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"entregador/internal/workflow"
	"entregador/models"
	"entregador/repository"
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithDeliveries seeds the collection without going through the source.
func WithDeliveries(list []models.Delivery) Option {
	return func(s *Store) {
		s.state = Reduce(s.state, SetDeliveries{Deliveries: list})
	}
}

type Store struct {
	mu     sync.RWMutex
	state  State
	source repository.DeliverySourceI
	now    func() time.Time
	log    *zap.Logger

	lmu       sync.Mutex
	listeners map[int]func(State)
	nextID    int
}

// New returns a store loading from source. source may be nil when the
// collection is seeded with WithDeliveries.
func New(source repository.DeliverySourceI, opts ...Option) *Store {
	s := &Store{
		source:    source,
		now:       time.Now,
		log:       zap.NewNop(),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every applied command.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.lmu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.lmu.Unlock()
	return func() {
		s.lmu.Lock()
		delete(s.listeners, id)
		s.lmu.Unlock()
	}
}

// dispatch applies commands atomically then notifies listeners.
func (s *Store) dispatch(cmds ...Command) {
	s.mu.Lock()
	for _, c := range cmds {
		s.state = Reduce(s.state, c)
	}
	snap := s.state.Clone()
	s.mu.Unlock()
	s.publish(snap)
}

func (s *Store) publish(snap State) {
	s.lmu.Lock()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()
	for _, fn := range fns {
		fn(snap.Clone())
	}
}

// LoadDeliveries replaces the collection and route with what the source returns.
func (s *Store) LoadDeliveries(ctx context.Context) error {
	if s.source == nil {
		return fmt.Errorf("load deliveries: no source configured")
	}
	s.dispatch(SetLoading{Loading: true})
	list, route, err := s.source.FetchDeliveries(ctx)
	if err != nil {
		s.dispatch(SetLoading{Loading: false})
		s.log.Warn("load deliveries failed", zap.Error(err))
		return fmt.Errorf("load deliveries: %w", err)
	}
	for i := range list {
		if err := list[i].Validate(); err != nil {
			s.log.Warn("invalid delivery from source", zap.Error(err))
		}
		if !list[i].TotalMatchesItems() {
			s.log.Warn("delivery total differs from items",
				zap.String("delivery_id", list[i].ID),
				zap.String("total", list[i].TotalAmount.String()),
				zap.String("items_total", list[i].ItemsTotal().String()))
		}
	}
	s.dispatch(SetDeliveries{Deliveries: list}, SetRoute{Route: route}, SetLoading{Loading: false})
	s.log.Debug("deliveries loaded", zap.Int("count", len(list)), zap.Bool("route", route != nil))
	return nil
}

// UpdateDeliveryStatus moves delivery id to status if the transition is legal.
func (s *Store) UpdateDeliveryStatus(id string, status models.DeliveryStatus) error {
	return s.update(id, status, DeliveryPatch{})
}

// CompleteDelivery marks id delivered and attaches the non-empty proof fields.
func (s *Store) CompleteDelivery(id, photo, signature string) error {
	var patch DeliveryPatch
	if photo != "" {
		patch.Photo = &photo
	}
	if signature != "" {
		patch.Signature = &signature
	}
	return s.update(id, models.DeliveryStatusDelivered, patch)
}

func (s *Store) update(id string, status models.DeliveryStatus, patch DeliveryPatch) error {
	s.mu.Lock()
	idx := indexOf(s.state.Deliveries, id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", id, ErrDeliveryNotFound)
	}
	cur := &s.state.Deliveries[idx]
	from := cur.Status
	if !workflow.IsLegalTransition(from, status, workflow.TransitionContext{NeedsReturn: cur.NeedsReturn()}) {
		s.mu.Unlock()
		return fmt.Errorf("update %s from %s to %s: %w", id, from, status, ErrIllegalTransition)
	}

	at := s.stampAfter(cur.UpdatedAt)
	patch.Status = &status
	switch status {
	case models.DeliveryStatusPickedUp:
		patch.PickupTime = &at
	case models.DeliveryStatusDelivered:
		patch.DeliveredAt = &at
	}
	s.state = Reduce(s.state, UpdateDelivery{ID: id, Patch: patch, At: at})
	snap := s.state.Clone()
	s.mu.Unlock()

	s.log.Debug("delivery status updated",
		zap.String("delivery_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(status)))
	s.publish(snap)
	return nil
}

// stampAfter returns now, bumped past prev so UpdatedAt strictly increases.
func (s *Store) stampAfter(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

// StartRoute activates the current route, or a fresh one from the source template.
func (s *Store) StartRoute() models.Route {
	s.mu.Lock()
	var r models.Route
	switch {
	case s.state.CurrentRoute != nil:
		r = s.state.CurrentRoute.Clone()
	case s.source != nil:
		r = s.source.RouteTemplate()
	default:
		r = models.Route{ID: uuid.NewString(), CreatedAt: s.now()}
	}
	now := s.now()
	r.StartTime = &now
	r.Status = models.RouteStatusActive
	r.UpdatedAt = now
	s.state = Reduce(s.state, SetRoute{Route: &r})
	snap := s.state.Clone()
	s.mu.Unlock()

	s.log.Info("route started", zap.String("route_id", r.ID), zap.Int("deliveries", len(r.DeliveryIDs)))
	s.publish(snap)
	return r.Clone()
}

// CompleteRoute closes the current route once none of its deliveries has work left.
func (s *Store) CompleteRoute() (models.Route, error) {
	s.mu.Lock()
	if s.state.CurrentRoute == nil {
		s.mu.Unlock()
		return models.Route{}, ErrNoRoute
	}
	r := s.state.CurrentRoute.Clone()
	for _, d := range s.state.Deliveries {
		if r.Includes(d.ID) && !finished(&d) {
			s.mu.Unlock()
			return models.Route{}, fmt.Errorf("complete route %s: delivery %s is %s: %w", r.ID, d.ID, d.Status, ErrRouteIncomplete)
		}
	}
	now := s.now()
	r.EndTime = &now
	r.Status = models.RouteStatusCompleted
	r.UpdatedAt = now
	if r.StartTime != nil {
		minutes := int(now.Sub(*r.StartTime).Minutes())
		r.ActualDuration = &minutes
	}
	s.state = Reduce(s.state, SetRoute{Route: &r})
	snap := s.state.Clone()
	s.mu.Unlock()

	s.log.Info("route completed", zap.String("route_id", r.ID))
	s.publish(snap)
	return r.Clone(), nil
}

func finished(d *models.Delivery) bool {
	if d.Status.IsTerminal() {
		return true
	}
	return d.Status == models.DeliveryStatusDelivered && !d.NeedsReturn()
}

// Deliveries returns a copy of the collection.
func (s *Store) Deliveries() []models.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone().Deliveries
}

func (s *Store) Delivery(id string) (models.Delivery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOf(s.state.Deliveries, id)
	if idx < 0 {
		return models.Delivery{}, false
	}
	return s.state.Deliveries[idx].Clone(), true
}

func (s *Store) CurrentRoute() (models.Route, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentRoute == nil {
		return models.Route{}, false
	}
	return s.state.CurrentRoute.Clone(), true
}

func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

// State returns a snapshot of everything the store holds.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

package store

import (
	"entregador/internal/geo"
	"entregador/models"
)

// Progress is derived from the live collection on every call.
type Progress struct {
	RouteID    string
	Total      int
	Completed  int
	Percentage float64
	// RemainingKm is the path from the route's current location through
	// the stops not yet delivered, in route order.
	RemainingKm float64
}

// RouteProgress reports how far the current route is. ok is false without a route.
func (s *Store) RouteProgress() (Progress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.state.CurrentRoute
	if r == nil {
		return Progress{}, false
	}
	p := Progress{RouteID: r.ID}
	var stops []models.Coordinates
	for _, id := range r.DeliveryIDs {
		idx := indexOf(s.state.Deliveries, id)
		if idx < 0 {
			continue
		}
		d := &s.state.Deliveries[idx]
		p.Total++
		if d.Status == models.DeliveryStatusDelivered {
			p.Completed++
			continue
		}
		if !d.Status.IsTerminal() {
			stops = append(stops, d.Coordinates)
		}
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Completed) / float64(p.Total) * 100
	}
	p.RemainingKm = geo.PathKm(r.CurrentLocation, stops)
	return p, true
}

// HistoryFilter selects which finished deliveries History lists.
type HistoryFilter string

const (
	HistoryAll       HistoryFilter = "all"
	HistoryDelivered HistoryFilter = "delivered"
	HistoryFailed    HistoryFilter = "failed"
)

func inHistory(st models.DeliveryStatus) bool {
	return st == models.DeliveryStatusDelivered ||
		st == models.DeliveryStatusReturned ||
		st == models.DeliveryStatusFailed
}

// History lists finished deliveries matching filter, in collection order.
func (s *Store) History(filter HistoryFilter) []models.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Delivery
	for i := range s.state.Deliveries {
		d := &s.state.Deliveries[i]
		if !inHistory(d.Status) {
			continue
		}
		if filter != HistoryAll && filter != "" && string(d.Status) != string(filter) {
			continue
		}
		out = append(out, d.Clone())
	}
	return out
}

// HistoryCounts returns the number of entries each filter would list.
func (s *Store) HistoryCounts() map[HistoryFilter]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := map[HistoryFilter]int{HistoryAll: 0, HistoryDelivered: 0, HistoryFailed: 0}
	for i := range s.state.Deliveries {
		st := s.state.Deliveries[i].Status
		if !inHistory(st) {
			continue
		}
		counts[HistoryAll]++
		switch st {
		case models.DeliveryStatusDelivered:
			counts[HistoryDelivered]++
		case models.DeliveryStatusFailed:
			counts[HistoryFailed]++
		}
	}
	return counts
}

// Stats is the dashboard summary.
type Stats struct {
	Pending        int
	CompletedToday int
	EarningsToday  models.Money
}

// Stats counts pending deliveries and those completed on the current day.
func (s *Store) Stats() Stats {
	now := s.now()
	y, m, d := now.Date()
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{EarningsToday: models.NewMoney(0)}
	for i := range s.state.Deliveries {
		del := &s.state.Deliveries[i]
		if del.Status == models.DeliveryStatusPending {
			st.Pending++
		}
		if del.DeliveredAt == nil {
			continue
		}
		if del.Status != models.DeliveryStatusDelivered && del.Status != models.DeliveryStatusReturned {
			continue
		}
		dy, dm, dd := del.DeliveredAt.In(now.Location()).Date()
		if dy == y && dm == m && dd == d {
			st.CompletedToday++
			st.EarningsToday = st.EarningsToday.Add(del.TotalAmount)
		}
	}
	return st
}

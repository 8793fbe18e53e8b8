package repository

import (
	"context"
	"time"

	"entregador/internal/latency"
	"entregador/models"
)

const day = 24 * time.Hour

// SeedDeliverySource serves a fixed set of deliveries after a simulated
// network delay. Each fetch returns fresh copies stamped relative to now.
type SeedDeliverySource struct {
	delay time.Duration
	now   func() time.Time
}

// NewSeedDeliverySource creates a source that waits delay before answering.
// now may be nil, in which case time.Now is used.
func NewSeedDeliverySource(delay time.Duration, now func() time.Time) *SeedDeliverySource {
	if now == nil {
		now = time.Now
	}
	return &SeedDeliverySource{delay: delay, now: now}
}

// FetchDeliveries waits the configured delay (cancellable) and returns the seed set.
func (s *SeedDeliverySource) FetchDeliveries(ctx context.Context) ([]models.Delivery, *models.Route, error) {
	if err := latency.Sleep(ctx, s.delay); err != nil {
		return nil, nil, err
	}
	now := s.now()
	route := s.routeAt(now)
	return SeedDeliveries(now), &route, nil
}

// RouteTemplate returns the planned route for the seed set.
func (s *SeedDeliverySource) RouteTemplate() models.Route {
	r := s.routeAt(s.now())
	r.Status = models.RouteStatusPlanned
	r.ActualDuration = nil
	return r
}

func (s *SeedDeliverySource) routeAt(now time.Time) models.Route {
	elapsed := 45
	return models.Route{
		ID:                "route-1",
		DeliveryIDs:       []string{"1", "2", "4"},
		StartLocation:     models.Coordinates{Latitude: -23.5505, Longitude: -46.6333},
		CurrentLocation:   models.Coordinates{Latitude: -23.5505, Longitude: -46.6333},
		Status:            models.RouteStatusActive,
		EstimatedDuration: 180,
		ActualDuration:    &elapsed,
		Distance:          25.5,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SeedDeliveries builds the demo delivery set with timestamps relative to now.
func SeedDeliveries(now time.Time) []models.Delivery {
	yesterday := now.Add(-day)
	twoDaysAgo := now.Add(-2 * day)
	return []models.Delivery{
		{
			ID:            "1",
			CustomerName:  "Maria Santos",
			CustomerPhone: "(11) 99999-1111",
			Address:       "Rua das Flores, 123",
			City:          "São Paulo",
			State:         "SP",
			ZipCode:       "01234-567",
			Coordinates:   models.Coordinates{Latitude: -23.5505, Longitude: -46.6333},
			Items: []models.DeliveryItem{
				{ID: "1", Name: "Água Mineral 20L", Quantity: 2, UnitPrice: models.NewMoney(12.50), ReturnContainer: true},
				{ID: "2", Name: "Água com Gás 20L", Quantity: 1, UnitPrice: models.NewMoney(15.00), ReturnContainer: true},
			},
			TotalAmount:   models.NewMoney(40.00),
			Status:        models.DeliveryStatusPending,
			Priority:      models.PriorityHigh,
			PaymentMethod: models.PaymentMoney,
			ScheduledDate: now,
			Notes:         "Entregar no portão principal",
			BottleReturn:  2,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "2",
			CustomerName:  "João Silva",
			CustomerPhone: "(11) 99999-2222",
			Address:       "Av. Paulista, 1000",
			City:          "São Paulo",
			State:         "SP",
			ZipCode:       "01310-100",
			Coordinates:   models.Coordinates{Latitude: -23.5615, Longitude: -46.6565},
			Items: []models.DeliveryItem{
				{ID: "3", Name: "Água Mineral 20L", Quantity: 3, UnitPrice: models.NewMoney(12.50), ReturnContainer: true},
			},
			TotalAmount:   models.NewMoney(37.50),
			Status:        models.DeliveryStatusInTransit,
			Priority:      models.PriorityMedium,
			PaymentMethod: models.PaymentCard,
			ScheduledDate: now,
			Notes:         "Apartamento 15B - Interfone",
			BottleReturn:  1,
			CreatedAt:     yesterday,
			UpdatedAt:     now,
		},
		{
			ID:            "3",
			CustomerName:  "Ana Costa",
			CustomerPhone: "(11) 99999-3333",
			Address:       "Rua Augusta, 500",
			City:          "São Paulo",
			State:         "SP",
			ZipCode:       "01305-000",
			Coordinates:   models.Coordinates{Latitude: -23.5570, Longitude: -46.6623},
			Items: []models.DeliveryItem{
				{ID: "4", Name: "Água Mineral 20L", Quantity: 1, UnitPrice: models.NewMoney(12.50), ReturnContainer: true},
				{ID: "5", Name: "Água Saborizada 20L", Quantity: 1, UnitPrice: models.NewMoney(18.00)},
			},
			TotalAmount:   models.NewMoney(30.50),
			Status:        models.DeliveryStatusDelivered,
			Priority:      models.PriorityLow,
			PaymentMethod: models.PaymentPix,
			ScheduledDate: twoDaysAgo,
			DeliveredAt:   &yesterday,
			Notes:         "Cliente preferencial",
			BottleReturn:  2,
			CreatedAt:     twoDaysAgo,
			UpdatedAt:     yesterday,
		},
		{
			ID:            "4",
			CustomerName:  "Carlos Oliveira",
			CustomerPhone: "(11) 99999-4444",
			Address:       "Rua da Consolação, 800",
			City:          "São Paulo",
			State:         "SP",
			ZipCode:       "01302-907",
			Coordinates:   models.Coordinates{Latitude: -23.5580, Longitude: -46.6540},
			Items: []models.DeliveryItem{
				{ID: "6", Name: "Água Mineral 20L", Quantity: 4, UnitPrice: models.NewMoney(12.50), ReturnContainer: true},
			},
			TotalAmount:   models.NewMoney(50.00),
			Status:        models.DeliveryStatusPending,
			Priority:      models.PriorityHigh,
			PaymentMethod: models.PaymentMoney,
			ScheduledDate: now,
			Notes:         "Escritório - horário comercial",
			BottleReturn:  3,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            "5",
			CustomerName:  "Fernanda Lima",
			CustomerPhone: "(11) 99999-5555",
			Address:       "Alameda Santos, 200",
			City:          "São Paulo",
			State:         "SP",
			ZipCode:       "01418-000",
			Coordinates:   models.Coordinates{Latitude: -23.5629, Longitude: -46.6544},
			Items: []models.DeliveryItem{
				{ID: "7", Name: "Água com Gás 20L", Quantity: 2, UnitPrice: models.NewMoney(15.00), ReturnContainer: true},
			},
			TotalAmount:   models.NewMoney(30.00),
			Status:        models.DeliveryStatusCancelled,
			Priority:      models.PriorityMedium,
			PaymentMethod: models.PaymentCard,
			ScheduledDate: yesterday,
			Notes:         "Cliente cancelou - reagendar",
			BottleReturn:  0,
			CreatedAt:     yesterday,
			UpdatedAt:     now,
		},
	}
}

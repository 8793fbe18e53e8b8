package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"entregador/models"
)

func TestSeedDeliverySource_Fetch(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	src := NewSeedDeliverySource(0, func() time.Time { return now })

	list, route, err := src.FetchDeliveries(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("expected 5 seed deliveries, got %d", len(list))
	}
	if route == nil || len(route.DeliveryIDs) != 3 {
		t.Fatalf("unexpected route: %+v", route)
	}
	for i := range list {
		d := list[i]
		if err := d.Validate(); err != nil {
			t.Errorf("seed delivery invalid: %v", err)
		}
		if !d.TotalMatchesItems() {
			t.Errorf("delivery %s total %s != items %s", d.ID, d.TotalAmount, d.ItemsTotal())
		}
	}
	if list[0].ID != "1" || list[0].Status != models.DeliveryStatusPending || !list[0].NeedsReturn() {
		t.Fatalf("delivery 1 not as seeded: %+v", list[0])
	}
}

func TestSeedDeliverySource_FreshCopies(t *testing.T) {
	src := NewSeedDeliverySource(0, nil)
	a, _, _ := src.FetchDeliveries(context.Background())
	a[0].Items[0].Quantity = 99
	b, _, _ := src.FetchDeliveries(context.Background())
	if b[0].Items[0].Quantity == 99 {
		t.Fatalf("fetches share item slices")
	}
}

func TestSeedDeliverySource_CancelledFetch(t *testing.T) {
	src := NewSeedDeliverySource(time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := src.FetchDeliveries(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSeedDeliverySource_RouteTemplateIsPlanned(t *testing.T) {
	r := NewSeedDeliverySource(0, nil).RouteTemplate()
	if r.Status != models.RouteStatusPlanned || r.StartTime != nil || r.ActualDuration != nil {
		t.Fatalf("template should be an unstarted plan: %+v", r)
	}
}

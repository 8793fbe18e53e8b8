package models

import (
	"fmt"
	"time"
)

// DeliveryStatus represents the current progress of a delivery.
type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "pending"
	DeliveryStatusCollecting DeliveryStatus = "collecting"
	DeliveryStatusPickedUp   DeliveryStatus = "picked_up"
	DeliveryStatusDelivering DeliveryStatus = "delivering"
	DeliveryStatusInTransit  DeliveryStatus = "in_transit"
	DeliveryStatusReturning  DeliveryStatus = "returning"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
	DeliveryStatusReturned   DeliveryStatus = "returned"
	DeliveryStatusFailed     DeliveryStatus = "failed"
	DeliveryStatusCancelled  DeliveryStatus = "cancelled"
)

// AllDeliveryStatuses lists the closed status enumeration in workflow order.
var AllDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusCollecting,
	DeliveryStatusPickedUp,
	DeliveryStatusDelivering,
	DeliveryStatusInTransit,
	DeliveryStatusReturning,
	DeliveryStatusDelivered,
	DeliveryStatusReturned,
	DeliveryStatusFailed,
	DeliveryStatusCancelled,
}

// Valid reports whether s belongs to the enumeration.
func (s DeliveryStatus) Valid() bool {
	for _, v := range AllDeliveryStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition leaves s.
// delivered is not terminal: a container return may still follow.
func (s DeliveryStatus) IsTerminal() bool {
	switch s {
	case DeliveryStatusReturned, DeliveryStatusFailed, DeliveryStatusCancelled:
		return true
	}
	return false
}

// Priority is informational and never affects transitions.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// PaymentMethod is how the customer pays on delivery.
type PaymentMethod string

const (
	PaymentMoney PaymentMethod = "money"
	PaymentCard  PaymentMethod = "card"
	PaymentPix   PaymentMethod = "pix"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DeliveryItem is one product line of a delivery.
type DeliveryItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unitPrice"`
	// ReturnContainer is set when the empty vessel must be collected back.
	ReturnContainer bool `json:"returnContainer,omitempty"`
}

// Subtotal is Quantity x UnitPrice.
func (i DeliveryItem) Subtotal() Money {
	return i.UnitPrice.Mul(i.Quantity)
}

// Delivery is one customer order.
// Optional timestamps are nil until the workflow reaches them; optional
// proof fields are empty until attached.
type Delivery struct {
	ID            string         `json:"id"`
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	ZipCode       string         `json:"zipCode"`
	Coordinates   Coordinates    `json:"coordinates"`
	Items         []DeliveryItem `json:"items"`
	// TotalAmount is supplied by the source and not recomputed; see TotalMatchesItems.
	TotalAmount   Money          `json:"totalAmount"`
	Status        DeliveryStatus `json:"status"`
	Priority      Priority       `json:"priority"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	ScheduledDate time.Time      `json:"scheduledDate"`
	EstimatedTime *time.Time     `json:"estimatedTime,omitempty"`
	PickupTime    *time.Time     `json:"pickupTime,omitempty"`
	DeliveredAt   *time.Time     `json:"deliveredAt,omitempty"`
	Photo         string         `json:"photo,omitempty"`
	Signature     string         `json:"signature,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	// BottleReturn is the planned number of containers to collect; the
	// quantity actually returned is entered during the return stage.
	BottleReturn int       `json:"bottleReturn"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NeedsReturn reports whether any item has a container to collect back.
func (d *Delivery) NeedsReturn() bool {
	for _, it := range d.Items {
		if it.ReturnContainer {
			return true
		}
	}
	return false
}

// MaxReturnQuantity is the sum of quantities of returnable items.
func (d *Delivery) MaxReturnQuantity() int {
	n := 0
	for _, it := range d.Items {
		if it.ReturnContainer {
			n += it.Quantity
		}
	}
	return n
}

// ItemsTotal is the sum of item subtotals.
func (d *Delivery) ItemsTotal() Money {
	total := NewMoney(0)
	for _, it := range d.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalMatchesItems reports whether TotalAmount equals ItemsTotal.
func (d *Delivery) TotalMatchesItems() bool {
	return d.TotalAmount.Equal(d.ItemsTotal())
}

// Validate checks the structural invariants of a delivery.
func (d *Delivery) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("delivery id is empty")
	}
	if !d.Status.Valid() {
		return fmt.Errorf("delivery %s: unknown status %q", d.ID, d.Status)
	}
	if d.ScheduledDate.IsZero() {
		return fmt.Errorf("delivery %s: scheduled date not set", d.ID)
	}
	seen := make(map[string]struct{}, len(d.Items))
	for _, it := range d.Items {
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("delivery %s: duplicate item id %q", d.ID, it.ID)
		}
		seen[it.ID] = struct{}{}
		if it.Quantity < 0 {
			return fmt.Errorf("delivery %s: item %s has negative quantity", d.ID, it.ID)
		}
	}
	return nil
}

// Clone returns a deep copy so callers never share slices or pointers with the store.
func (d Delivery) Clone() Delivery {
	out := d
	if d.Items != nil {
		out.Items = make([]DeliveryItem, len(d.Items))
		copy(out.Items, d.Items)
	}
	out.EstimatedTime = cloneTime(d.EstimatedTime)
	out.PickupTime = cloneTime(d.PickupTime)
	out.DeliveredAt = cloneTime(d.DeliveredAt)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

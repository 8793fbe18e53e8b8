package repository

import (
	"context"

	"entregador/models"
)

// KVRepositoryI is device-local durable storage of small serialized records.
type KVRepositoryI interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DeliverySourceI is the backing data source the delivery store loads from.
type DeliverySourceI interface {
	// FetchDeliveries returns the full delivery collection and the planned route, if any.
	FetchDeliveries(ctx context.Context) ([]models.Delivery, *models.Route, error)
	// RouteTemplate returns a fresh route used when a route is started without one loaded.
	RouteTemplate() models.Route
}

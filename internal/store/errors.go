package store

import (
	"errors"

	"entregador/internal/workflow"
)

var (
	// Shared with workflow so sessions can tell rejections from transient failures.
	ErrDeliveryNotFound  = workflow.ErrDeliveryNotFound
	ErrIllegalTransition = workflow.ErrIllegalTransition

	ErrNoRoute         = errors.New("no current route")
	ErrRouteIncomplete = errors.New("route has unfinished deliveries")
)

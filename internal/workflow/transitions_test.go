package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"entregador/models"
)

func TestIsLegalTransition(t *testing.T) {
	withReturn := TransitionContext{NeedsReturn: true}
	noReturn := TransitionContext{}

	assert.True(t, IsLegalTransition(models.DeliveryStatusPending, models.DeliveryStatusPickedUp, noReturn))
	assert.True(t, IsLegalTransition(models.DeliveryStatusPickedUp, models.DeliveryStatusDelivered, noReturn))
	assert.True(t, IsLegalTransition(models.DeliveryStatusInTransit, models.DeliveryStatusDelivered, withReturn))
	assert.True(t, IsLegalTransition(models.DeliveryStatusDelivered, models.DeliveryStatusReturned, withReturn))

	assert.False(t, IsLegalTransition(models.DeliveryStatusDelivered, models.DeliveryStatusReturned, noReturn))
	assert.False(t, IsLegalTransition(models.DeliveryStatusPending, models.DeliveryStatusDelivered, noReturn))
	assert.False(t, IsLegalTransition(models.DeliveryStatusPending, "bogus", noReturn))
}

func TestIsLegalTransition_NoSelfLoopsNoExitFromTerminal(t *testing.T) {
	ctx := TransitionContext{NeedsReturn: true}
	for _, from := range models.AllDeliveryStatuses {
		assert.False(t, IsLegalTransition(from, from, ctx), "self loop on %s", from)
		if !from.IsTerminal() {
			continue
		}
		for _, to := range models.AllDeliveryStatuses {
			assert.False(t, IsLegalTransition(from, to, ctx), "%s -> %s", from, to)
		}
	}
}

func TestNextStatuses(t *testing.T) {
	assert.Empty(t, NextStatuses(models.DeliveryStatusDelivered, TransitionContext{}))
	assert.ElementsMatch(t,
		[]models.DeliveryStatus{models.DeliveryStatusReturning, models.DeliveryStatusReturned},
		NextStatuses(models.DeliveryStatusDelivered, TransitionContext{NeedsReturn: true}))
}

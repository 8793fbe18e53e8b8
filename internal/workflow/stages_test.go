package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"entregador/models"
)

func TestStepStatusFor(t *testing.T) {
	for current := StageCollect; current <= StageReturn; current++ {
		for i := 0; i < len(Steps); i++ {
			got := StepStatusFor(i, current)
			switch {
			case i < int(current):
				assert.Equal(t, StepCompleted, got, "i=%d current=%d", i, current)
			case i == int(current):
				assert.Equal(t, StepActive, got, "i=%d current=%d", i, current)
			default:
				assert.Equal(t, StepPending, got, "i=%d current=%d", i, current)
			}
		}
	}
}

func TestTimeline(t *testing.T) {
	tl := Timeline{Current: StageDeliver, CanNavigate: true}
	assert.True(t, tl.IsStepClickable(0))
	assert.True(t, tl.IsStepClickable(1))
	assert.False(t, tl.IsStepClickable(2))
	assert.False(t, tl.IsStepClickable(-1))
	assert.False(t, tl.ShowSkip())
	assert.False(t, tl.ShowGoBack())

	tl.CanNavigate = false
	assert.False(t, tl.IsStepClickable(0))

	back := Timeline{Current: StageDeliver, Reached: StageReturn, CanNavigate: true}
	assert.True(t, back.IsStepClickable(2))
	assert.Equal(t, StepPending, back.StepStatus(2))
	assert.False(t, Timeline{Current: StageReturn, Done: true}.ShowSkip())

	assert.True(t, Timeline{Current: StageCollect}.ShowSkip())
	assert.False(t, Timeline{Current: StageCollect}.ShowGoBack())
	ret := Timeline{Current: StageReturn}
	assert.True(t, ret.ShowSkip())
	assert.True(t, ret.ShowGoBack())
	assert.Equal(t, StepCompleted, ret.StepStatus(1))
}

func TestStageForStatus(t *testing.T) {
	cases := []struct {
		status      models.DeliveryStatus
		needsReturn bool
		stage       Stage
		ok          bool
	}{
		{models.DeliveryStatusPending, false, StageCollect, true},
		{models.DeliveryStatusCollecting, true, StageCollect, true},
		{models.DeliveryStatusPickedUp, true, StageDeliver, true},
		{models.DeliveryStatusInTransit, false, StageDeliver, true},
		{models.DeliveryStatusDelivered, true, StageReturn, true},
		{models.DeliveryStatusDelivered, false, StageDeliver, false},
		{models.DeliveryStatusReturning, true, StageReturn, true},
		{models.DeliveryStatusReturned, true, StageReturn, false},
		{models.DeliveryStatusCancelled, false, StageReturn, false},
	}
	for _, c := range cases {
		stage, ok := StageForStatus(c.status, c.needsReturn)
		assert.Equal(t, c.stage, stage, "status=%s", c.status)
		assert.Equal(t, c.ok, ok, "status=%s", c.status)
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "collect", StageCollect.String())
	assert.Equal(t, "return", StageReturn.String())
	assert.Equal(t, "unknown", Stage(7).String())
}

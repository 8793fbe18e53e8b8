package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entregador/models"
	"entregador/repository"
)

func TestReduce_DoesNotMutateInput(t *testing.T) {
	in := Reduce(State{}, SetDeliveries{Deliveries: repository.SeedDeliveries(day)})
	snapshot := in.Clone()

	status := models.DeliveryStatusCollecting
	notes := "portão azul"
	out := Reduce(in, UpdateDelivery{ID: "1", Patch: DeliveryPatch{Status: &status, Notes: &notes}, At: day.Add(time.Second)})

	assert.True(t, reflect.DeepEqual(snapshot, in), "input state changed")
	assert.Equal(t, models.DeliveryStatusCollecting, out.Deliveries[0].Status)
	assert.Equal(t, notes, out.Deliveries[0].Notes)
	assert.Equal(t, day.Add(time.Second), out.Deliveries[0].UpdatedAt)
	assert.Equal(t, in.Deliveries[1], out.Deliveries[1])
}

func TestReduce_UnknownIDIsIdentity(t *testing.T) {
	in := Reduce(State{}, SetDeliveries{Deliveries: repository.SeedDeliveries(day)})
	status := models.DeliveryStatusFailed
	out := Reduce(in, UpdateDelivery{ID: "nope", Patch: DeliveryPatch{Status: &status}, At: day})
	assert.True(t, reflect.DeepEqual(in, out))
}

func TestReduce_LoadingAndRoute(t *testing.T) {
	s := Reduce(State{}, SetLoading{Loading: true})
	require.True(t, s.IsLoading)

	r := models.Route{ID: "r", DeliveryIDs: []string{"1"}}
	s = Reduce(s, SetRoute{Route: &r})
	r.DeliveryIDs[0] = "changed"
	require.NotNil(t, s.CurrentRoute)
	assert.Equal(t, "1", s.CurrentRoute.DeliveryIDs[0], "route is copied in")

	s = Reduce(s, SetRoute{})
	assert.Nil(t, s.CurrentRoute)
}

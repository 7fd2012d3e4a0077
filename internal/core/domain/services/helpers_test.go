package services_test

import (
	"testing"

	"dronedelivery/internal/core/domain/model/drone"
	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func newDrone(t *testing.T, id string, payload, distance, speed float64, available bool) *drone.Drone {
	t.Helper()
	d, err := drone.NewDrone(kernel.MustNewID(id), payload, distance, speed, available)
	require.NoError(t, err)
	return d
}

func newOrder(t *testing.T, id string, x, y int, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.MustNewID(id), kernel.NewPoint(x, y), weight)
	require.NoError(t, err)
	return o
}

func idStrings(ids []kernel.ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func orderStrings(orders []*order.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID().String()
	}
	return out
}

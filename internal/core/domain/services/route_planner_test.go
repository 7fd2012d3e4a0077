package services_test

import (
	"testing"

	"dronedelivery/internal/core/domain/model/order"
	"dronedelivery/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestNearestNeighborRoutePlanner_Route(t *testing.T) {
	planner := services.NewNearestNeighborRoutePlanner()

	t.Run("should return zero for empty input", func(t *testing.T) {
		route := planner.Route(nil)

		assert.Empty(t, route.Stops)
		assert.Equal(t, 0, route.Distance)
		assert.Equal(t, 0, services.PlanRoute([]*order.Order{}))
	})

	t.Run("should count out and back for a single stop", func(t *testing.T) {
		route := planner.Route([]*order.Order{newOrder(t, "O1", 2, 3, 1)})

		assert.Equal(t, 10, route.Distance)
	})

	t.Run("should visit the closest stop first", func(t *testing.T) {
		far := newOrder(t, "far", 3, 0, 1)
		near := newOrder(t, "near", 1, 0, 1)

		route := planner.Route([]*order.Order{far, near})

		assert.Equal(t, []string{"near", "far"}, orderStrings(route.Stops))
		assert.Equal(t, 6, route.Distance)
	})

	t.Run("should break ties by first encountered remaining order", func(t *testing.T) {
		east := newOrder(t, "east", 2, 0, 1)
		north := newOrder(t, "north", 0, 2, 1)

		route := planner.Route([]*order.Order{east, north})
		assert.Equal(t, []string{"east", "north"}, orderStrings(route.Stops))

		route = planner.Route([]*order.Order{north, east})
		assert.Equal(t, []string{"north", "east"}, orderStrings(route.Stops))
		assert.Equal(t, 8, route.Distance)
	})

	t.Run("should not depend on input order without ties", func(t *testing.T) {
		a := newOrder(t, "a", 1, 0, 1)
		b := newOrder(t, "b", 4, 1, 1)
		c := newOrder(t, "c", -2, 5, 1)

		first := planner.Route([]*order.Order{a, b, c})
		second := planner.Route([]*order.Order{c, a, b})

		assert.Equal(t, first.Distance, second.Distance)
		assert.Equal(t, orderStrings(first.Stops), orderStrings(second.Stops))
	})

	t.Run("should not modify the input slice", func(t *testing.T) {
		in := []*order.Order{newOrder(t, "x", 5, 5, 1), newOrder(t, "y", 1, 1, 1)}

		planner.Route(in)

		assert.Equal(t, []string{"x", "y"}, orderStrings(in))
	})
}

package http

import (
	"fmt"
	"net/http"
	"time"

	"dronedelivery/internal/adapters/codec"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Error is the body of every non-2xx API response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PlanResponse is the result of planning a posted snapshot.
type PlanResponse struct {
	Assignments   []codec.AssignmentDTO `json:"assignments"`
	Unassigned    []codec.IDValue       `json:"unassigned"`
	TotalDistance int                   `json:"total_distance"`
	Snapshot      *string               `json:"snapshot,omitempty"`
	PlanId        *uuid.UUID            `json:"plan_id,omitempty"`
}

// StoredPlan is a plan read back from the database.
type StoredPlan struct {
	PlanId        uuid.UUID             `json:"plan_id"`
	Snapshot      string                `json:"snapshot"`
	CreatedAt     time.Time             `json:"created_at"`
	Assignments   []codec.AssignmentDTO `json:"assignments"`
	Unassigned    []codec.IDValue       `json:"unassigned"`
	TotalDistance int                   `json:"total_distance"`
}

type SnapshotSummary struct {
	Name       string    `json:"name"`
	GridWidth  int       `json:"grid_width"`
	GridHeight int       `json:"grid_height"`
	Drones     int       `json:"drones"`
	Orders     int       `json:"orders"`
	Plans      int       `json:"plans"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatePlanParams defines parameters for CreatePlan.
type CreatePlanParams struct {
	Persist *string `form:"persist,omitempty" json:"persist,omitempty"`
}

// ListSnapshotsParams defines parameters for ListSnapshots.
type ListSnapshotsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Plan a snapshot
	// (POST /api/v1/plans)
	CreatePlan(ctx echo.Context, params CreatePlanParams) error
	// List stored snapshots
	// (GET /api/v1/snapshots)
	ListSnapshots(ctx echo.Context, params ListSnapshotsParams) error
	// Latest stored plan of a snapshot
	// (GET /api/v1/snapshots/{name}/plans/latest)
	GetLatestPlan(ctx echo.Context, name string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreatePlan converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePlan(ctx echo.Context) error {
	var err error

	var params CreatePlanParams
	err = runtime.BindQueryParameter("form", true, false, "persist", ctx.QueryParams(), &params.Persist)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter persist: %s", err))
	}

	err = w.Handler.CreatePlan(ctx, params)
	return err
}

// ListSnapshots converts echo context to params.
func (w *ServerInterfaceWrapper) ListSnapshots(ctx echo.Context) error {
	var err error

	var params ListSnapshotsParams
	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = w.Handler.ListSnapshots(ctx, params)
	return err
}

// GetLatestPlan converts echo context to params.
func (w *ServerInterfaceWrapper) GetLatestPlan(ctx echo.Context) error {
	var err error

	var name string
	err = runtime.BindStyledParameterWithOptions("simple", "name", ctx.Param("name"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter name: %s", err))
	}

	err = w.Handler.GetLatestPlan(ctx, name)
	return err
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter. Route level
// middleware m is applied to every API route.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST("/api/v1/plans", wrapper.CreatePlan, m...)
	router.GET("/api/v1/snapshots", wrapper.ListSnapshots, m...)
	router.GET("/api/v1/snapshots/:name/plans/latest", wrapper.GetLatestPlan, m...)
}

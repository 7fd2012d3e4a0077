package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"dronedelivery/internal/adapters/codec"
	"dronedelivery/internal/core/application/usecases/commands"
	"dronedelivery/internal/core/application/usecases/queries"
	"dronedelivery/internal/core/domain/model/plan"
	"dronedelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultSnapshotsLimit = 50

// Handlers the server delegates to. The concrete command and query handlers
// satisfy them.
type (
	PlanSnapshotHandler interface {
		Handle(ctx context.Context, cmd commands.PlanSnapshotCommand) (*plan.Plan, error)
	}

	PersistPlanHandler interface {
		Handle(ctx context.Context, cmd commands.PersistPlanCommand) (uuid.UUID, error)
	}

	LatestPlanHandler interface {
		Handle(ctx context.Context, query queries.GetLatestPlanQuery) (*queries.GetLatestPlanQueryResponse, error)
	}

	SnapshotsHandler interface {
		Handle(ctx context.Context, query queries.GetSnapshotsQuery) ([]queries.GetSnapshotsQueryResponse, error)
	}
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	planSnapshotHandler PlanSnapshotHandler
	persistPlanHandler  PersistPlanHandler

	// Query handlers
	latestPlanHandler LatestPlanHandler
	snapshotsHandler  SnapshotsHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	planSnapshotHandler PlanSnapshotHandler,
	persistPlanHandler PersistPlanHandler,
	latestPlanHandler LatestPlanHandler,
	snapshotsHandler SnapshotsHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		planSnapshotHandler: planSnapshotHandler,
		persistPlanHandler:  persistPlanHandler,
		latestPlanHandler:   latestPlanHandler,
		snapshotsHandler:    snapshotsHandler,
		logger:              logger.With("component", "http_server"),
	}
}

// CreatePlan handles POST /api/v1/plans - plans the posted snapshot and,
// with ?persist=name, stores the snapshot and the plan under that name in
// one transaction.
func (s *Server) CreatePlan(ctx echo.Context, params CreatePlanParams) error {
	reqCtx := ctx.Request().Context()

	snap, err := codec.DecodeSnapshot(ctx.Request().Body, codec.FormatJSON)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to read snapshot")
	}

	cmd, err := commands.NewPlanSnapshotCommand(snap, "http")
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to create plan command")
	}

	p, err := s.planSnapshotHandler.Handle(reqCtx, cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to plan snapshot")
	}

	response := PlanResponse{
		Assignments:   codec.PlanToDTO(p).Assignments,
		Unassigned:    codec.IDValues(p.Unassigned()),
		TotalDistance: p.TotalDistance(),
	}

	if params.Persist != nil {
		name := *params.Persist

		persistCmd, err := commands.NewPersistPlanCommand(name, snap, p)
		if err != nil {
			return s.errorResponse(ctx, err, "Failed to create persist command")
		}
		planID, err := s.persistPlanHandler.Handle(reqCtx, persistCmd)
		if err != nil {
			return s.errorResponse(ctx, err, "Failed to store plan")
		}
		response.Snapshot = &name
		response.PlanId = &planID
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListSnapshots handles GET /api/v1/snapshots - lists stored snapshots.
func (s *Server) ListSnapshots(ctx echo.Context, params ListSnapshotsParams) error {
	limit := defaultSnapshotsLimit
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetSnapshotsQuery(limit)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid limit")
	}

	snapshots, err := s.snapshotsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve snapshots")
	}

	response := make([]SnapshotSummary, len(snapshots))
	for i, snap := range snapshots {
		response[i] = SnapshotSummary{
			Name:       snap.Name,
			GridWidth:  snap.GridWidth,
			GridHeight: snap.GridHeight,
			Drones:     snap.Drones,
			Orders:     snap.Orders,
			Plans:      snap.Plans,
			CreatedAt:  snap.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetLatestPlan handles GET /api/v1/snapshots/{name}/plans/latest.
func (s *Server) GetLatestPlan(ctx echo.Context, name string) error {
	query, err := queries.NewGetLatestPlanQuery(name)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid snapshot name")
	}

	latest, err := s.latestPlanHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to retrieve plan")
	}

	assignments := make([]codec.AssignmentDTO, len(latest.Assignments))
	for i, a := range latest.Assignments {
		assignments[i] = codec.NewAssignmentDTO(a.DroneID, a.Orders, a.TotalDistance)
	}

	return ctx.JSON(http.StatusOK, StoredPlan{
		PlanId:        latest.PlanID,
		Snapshot:      latest.SnapshotName,
		CreatedAt:     latest.CreatedAt,
		Assignments:   assignments,
		Unassigned:    codec.IDValues(latest.Unassigned),
		TotalDistance: latest.TotalDistance,
	})
}

// errorResponse maps validation errors to 400 and lookup misses to 404. Other
// errors are logged and reported as 500 with the generic message.
func (s *Server) errorResponse(ctx echo.Context, err error, message string) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
		message = err.Error()
	default:
		s.logger.ErrorContext(ctx.Request().Context(), message, "error", err)
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

// Package http exposes the group order coordination engine over a JSON API.
package http

import (
	"net/http"
	"time"

	"grouporder/internal/core/application/usecases/commands"
	"grouporder/internal/core/application/usecases/queries"
	"grouporder/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createGroupOrderHandler       commands.CreateGroupOrderCommandHandler
	joinGroupOrderHandler         commands.JoinGroupOrderCommandHandler
	changeParticipantItemsHandler commands.ChangeParticipantItemsCommandHandler
	setParticipantReadyHandler    commands.SetParticipantReadyCommandHandler
	chipInToBudgetHandler         commands.ChipInToBudgetCommandHandler
	finalizeGroupOrderHandler     commands.FinalizeGroupOrderCommandHandler
	cancelGroupOrderHandler       commands.CancelGroupOrderCommandHandler

	// Query handlers
	getGroupOrderStatusHandler queries.GetGroupOrderStatusQueryHandler
	resolveShareTokenHandler   queries.ResolveShareTokenQueryHandler

	defaultTTL time.Duration
}

// NewServer creates a new HTTP server with the required command and query
// handlers. defaultTTL is applied when a creation request does not name one.
func NewServer(
	createGroupOrderHandler commands.CreateGroupOrderCommandHandler,
	joinGroupOrderHandler commands.JoinGroupOrderCommandHandler,
	changeParticipantItemsHandler commands.ChangeParticipantItemsCommandHandler,
	setParticipantReadyHandler commands.SetParticipantReadyCommandHandler,
	chipInToBudgetHandler commands.ChipInToBudgetCommandHandler,
	finalizeGroupOrderHandler commands.FinalizeGroupOrderCommandHandler,
	cancelGroupOrderHandler commands.CancelGroupOrderCommandHandler,
	getGroupOrderStatusHandler queries.GetGroupOrderStatusQueryHandler,
	resolveShareTokenHandler queries.ResolveShareTokenQueryHandler,
	defaultTTL time.Duration,
) *Server {
	return &Server{
		createGroupOrderHandler:       createGroupOrderHandler,
		joinGroupOrderHandler:         joinGroupOrderHandler,
		changeParticipantItemsHandler: changeParticipantItemsHandler,
		setParticipantReadyHandler:    setParticipantReadyHandler,
		chipInToBudgetHandler:         chipInToBudgetHandler,
		finalizeGroupOrderHandler:     finalizeGroupOrderHandler,
		cancelGroupOrderHandler:       cancelGroupOrderHandler,
		getGroupOrderStatusHandler:    getGroupOrderStatusHandler,
		resolveShareTokenHandler:      resolveShareTokenHandler,
		defaultTTL:                    defaultTTL,
	}
}

// RegisterRoutes wires all endpoints into the echo instance.
// Token resolution and the health check stay public; everything else goes
// through the JWT middleware.
func (s *Server) RegisterRoutes(e *echo.Echo, auth *JWTAuthenticator) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/share-tokens/:token", s.ResolveShareToken)

	protected := api.Group("", auth.Middleware())
	protected.POST("/group-orders", s.CreateGroupOrder)
	protected.POST("/group-orders/:id/join", s.JoinGroupOrder)
	protected.PUT("/group-orders/:id/participants/:user_id/items", s.ChangeParticipantItems)
	protected.POST("/group-orders/:id/ready", s.SetParticipantReady)
	protected.POST("/group-orders/:id/budget", s.ChipInToBudget)
	protected.GET("/group-orders/:id/status", s.GetGroupOrderStatus)
	protected.POST("/group-orders/:id/finalize", s.FinalizeGroupOrder)
	protected.POST("/group-orders/:id/cancel", s.CancelGroupOrder)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateGroupOrder handles POST /api/v1/group-orders - starts a group order.
func (s *Server) CreateGroupOrder(c echo.Context) error {
	creatorID, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	var body CreateGroupOrderRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ttl := s.defaultTTL
	if body.TTLSeconds > 0 {
		ttl = time.Duration(body.TTLSeconds) * time.Second
	}

	cmd, err := commands.NewCreateGroupOrderCommand(kernel.NewUUID(), creatorID, body.Title, ttl, body.InitialBudget)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.createGroupOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, CreateGroupOrderResponse{
		ID:         result.GroupOrderID.String(),
		ShareToken: result.ShareToken,
		ExpiresAt:  result.ExpiresAt,
	})
}

// ResolveShareToken handles GET /api/v1/share-tokens/:token - resolves an
// invite token. Tokens whose group order already expired answer 410.
func (s *Server) ResolveShareToken(c echo.Context) error {
	query, err := queries.NewResolveShareTokenQuery(c.Param("token"))
	if err != nil {
		return respondError(c, err)
	}

	resolved, err := s.resolveShareTokenHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	if resolved.Status == expiredStatusWire {
		return c.JSON(http.StatusGone, ErrorResponse{
			Code:    http.StatusGone,
			Message: "group order has expired",
		})
	}

	return c.JSON(http.StatusOK, ResolveShareTokenResponse{
		GroupOrderID: resolved.GroupOrderID.String(),
		CreatorID:    resolved.CreatorID.String(),
		Title:        resolved.Title,
		Status:       resolved.Status,
		ExpiresAt:    resolved.ExpiresAt,
	})
}

// JoinGroupOrder handles POST /api/v1/group-orders/:id/join - joins the
// authenticated user, optionally setting an initial item list in the same
// request.
func (s *Server) JoinGroupOrder(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	var body JoinGroupOrderRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewJoinGroupOrderCommand(groupOrderID, userID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.joinGroupOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	if len(body.Items) > 0 {
		specs, specErr := toItemSpecs(body.Items)
		if specErr != nil {
			return badRequest(c, "Invalid dish id")
		}
		changeCmd, changeErr := commands.NewChangeParticipantItemsCommand(
			groupOrderID, userID, userID, specs)
		if changeErr != nil {
			return respondError(c, changeErr)
		}
		if changeErr = s.changeParticipantItemsHandler.Handle(c.Request().Context(), changeCmd); changeErr != nil {
			return respondError(c, changeErr)
		}
	}

	return c.JSON(http.StatusOK, JoinGroupOrderResponse{
		AlreadyJoined: result.AlreadyJoined,
		JoinedAt:      result.JoinedAt,
		Status:        result.Status.String(),
	})
}

// ChangeParticipantItems handles PUT /api/v1/group-orders/:id/participants/:user_id/items.
func (s *Server) ChangeParticipantItems(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	targetUserID, err := kernel.UUIDFromString(c.Param("user_id"))
	if err != nil {
		return badRequest(c, "Invalid user id")
	}

	var body ChangeItemsRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	specs, err := toItemSpecs(body.Items)
	if err != nil {
		return badRequest(c, "Invalid dish id")
	}

	cmd, err := commands.NewChangeParticipantItemsCommand(groupOrderID, actor, targetUserID, specs)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.changeParticipantItemsHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetParticipantReady handles POST /api/v1/group-orders/:id/ready - declares
// or withdraws the authenticated user's readiness.
func (s *Server) SetParticipantReady(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	var body SetReadyRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewSetParticipantReadyCommand(groupOrderID, userID, userID, body.Ready)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.setParticipantReadyHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, SetReadyResponse{
		Status:     result.Status.String(),
		ReadyCount: result.Readiness.ReadyCount,
		TotalCount: result.Readiness.TotalCount,
		AllReady:   result.Readiness.AllReady,
	})
}

// ChipInToBudget handles POST /api/v1/group-orders/:id/budget - adds the
// authenticated participant's money to the shared budget bucket.
func (s *Server) ChipInToBudget(c echo.Context) error {
	userID, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	var body ChipInToBudgetRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChipInToBudgetCommand(groupOrderID, userID, body.Amount)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.chipInToBudgetHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, ChipInToBudgetResponse{
		BudgetContribution: result.BudgetContribution,
		TotalBudget:        result.TotalBudget,
	})
}

// GetGroupOrderStatus handles GET /api/v1/group-orders/:id/status.
func (s *Server) GetGroupOrderStatus(c echo.Context) error {
	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	query, err := queries.NewGetGroupOrderStatusQuery(groupOrderID)
	if err != nil {
		return respondError(c, err)
	}

	status, err := s.getGroupOrderStatusHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, toStatusResponse(status))
}

// FinalizeGroupOrder handles POST /api/v1/group-orders/:id/finalize.
func (s *Server) FinalizeGroupOrder(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	var body FinalizeGroupOrderRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewFinalizeGroupOrderCommand(groupOrderID, actor, body.Force)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.finalizeGroupOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, FinalizeGroupOrderResponse{
		FinalizedOrderID: result.FinalizedOrderID.String(),
	})
}

// CancelGroupOrder handles POST /api/v1/group-orders/:id/cancel.
func (s *Server) CancelGroupOrder(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	groupOrderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid group order id")
	}

	cmd, err := commands.NewCancelGroupOrderCommand(groupOrderID, actor)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.cancelGroupOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
	"github.com/peergov/modgate/internal/present/rest/presenter"
	"github.com/peergov/modgate/internal/usecase"
)

// RealtimeStream relays pubsub events to a websocket session, stopping when
// the context is cancelled. Satisfied by service.SignalService.
type RealtimeStream interface {
	Realtime(ctx context.Context, request <-chan []string, response chan<- modgate.Event)
}

type Handler struct {
	config   domain.Config
	registry *usecase.RegistryUsecase
	proposal *usecase.ProposalUsecase
	scoring  *usecase.ScoringUsecase
	decision *usecase.DecisionUsecase
	signal   RealtimeStream
}

func NewHandler(
	config domain.Config,
	registry *usecase.RegistryUsecase,
	proposal *usecase.ProposalUsecase,
	scoring *usecase.ScoringUsecase,
	decision *usecase.DecisionUsecase,
	signal RealtimeStream,
) *Handler {
	return &Handler{
		config:   config,
		registry: registry,
		proposal: proposal,
		scoring:  scoring,
		decision: decision,
		signal:   signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/.well-known/modgate", h.handleWellKnown)
	e.POST("/api/v1/register", h.handleRegister)
	e.POST("/api/v1/proposals", h.handleSubmit)
	e.GET("/api/v1/proposals/:id", h.handleGetProposal)
	e.POST("/api/v1/proposals/:id/scores", h.handleScore)
	e.GET("/api/v1/proposals/:id/scores", h.handleListScores)
	e.POST("/api/v1/proposals/:id/finalize", h.handleFinalize)
	e.GET("/api/v1/moderators", h.handleListModerators)
	e.GET("/api/v1/moderators/me", h.handleMe)
	e.GET("/realtime", h.handleRealtime)
}

// requester resolves the authenticated address set by the auth middleware.
func requester(c echo.Context) (string, bool) {
	identity, ok := c.Request().Context().Value(domain.RequesterIdCtxKey).(string)
	return identity, ok && identity != ""
}

func proposalID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func (h *Handler) handleWellKnown(c echo.Context) error {
	wellknown := modgate.WellKnownModgate{
		Version: "1.0",
		Domain:  h.config.FQDN,
		GSID:    h.config.GSID,
		Endpoints: map[string]modgate.ModgateEndpoint{
			"org.peergov.gate.register": {
				Template: "/api/v1/register",
				Method:   "POST",
			},
			"org.peergov.gate.proposal.submit": {
				Template: "/api/v1/proposals",
				Method:   "POST",
			},
			"org.peergov.gate.proposal": {
				Template: "/api/v1/proposals/{id}",
				Method:   "GET",
			},
			"org.peergov.gate.proposal.score": {
				Template: "/api/v1/proposals/{id}/scores",
				Method:   "POST",
			},
			"org.peergov.gate.proposal.scores": {
				Template: "/api/v1/proposals/{id}/scores",
				Method:   "GET",
			},
			"org.peergov.gate.proposal.finalize": {
				Template: "/api/v1/proposals/{id}/finalize",
				Method:   "POST",
			},
			"org.peergov.gate.moderators": {
				Template: "/api/v1/moderators",
				Method:   "GET",
			},
			"org.peergov.gate.moderators.me": {
				Template: "/api/v1/moderators/me",
				Method:   "GET",
			},
			"org.peergov.gate.realtime": {
				Template: "/realtime",
				Method:   "GET",
			},
		},
	}
	return presenter.OK(c, wellknown)
}

type registerRequest struct {
	StakeAmount uint64 `json:"stakeAmount"`
}

func (h *Handler) handleRegister(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := requester(c)
	if !ok {
		return presenter.Forbidden(c, "authentication required")
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	moderator, err := h.registry.Register(ctx, identity, req.StakeAmount)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, moderator)
}

type submitRequest struct {
	ContentHash string `json:"contentHash"`
}

func (h *Handler) handleSubmit(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := requester(c)
	if !ok {
		return presenter.Forbidden(c, "authentication required")
	}

	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if !modgate.IsContentHash(req.ContentHash) {
		return presenter.BadRequestMessage(c, "contentHash must be a sha256 hex digest")
	}

	proposal, err := h.proposal.Submit(ctx, identity, req.ContentHash)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, proposal)
}

func (h *Handler) handleGetProposal(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := proposalID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid proposal id")
	}

	proposal, err := h.proposal.Get(ctx, id)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, proposal)
}

type scoreRequest struct {
	Score         int64  `json:"score"`
	ReasoningHash string `json:"reasoningHash"`
}

func (h *Handler) handleScore(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := requester(c)
	if !ok {
		return presenter.Forbidden(c, "authentication required")
	}

	id, err := proposalID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid proposal id")
	}

	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if !modgate.IsContentHash(req.ReasoningHash) {
		return presenter.BadRequestMessage(c, "reasoningHash must be a sha256 hex digest")
	}

	record, err := h.scoring.Score(ctx, id, identity, req.Score, req.ReasoningHash)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, record)
}

func (h *Handler) handleListScores(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := proposalID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid proposal id")
	}

	records, err := h.scoring.List(ctx, id)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, records)
}

func (h *Handler) handleFinalize(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := requester(c); !ok {
		return presenter.Forbidden(c, "authentication required")
	}

	id, err := proposalID(c)
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid proposal id")
	}

	verdict, err := h.decision.Finalize(ctx, id)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, verdict)
}

func (h *Handler) handleListModerators(c echo.Context) error {
	ctx := c.Request().Context()

	moderators, err := h.registry.List(ctx)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, moderators)
}

type meResponse struct {
	Moderator   domain.Moderator            `json:"moderator"`
	Performance domain.ModeratorPerformance `json:"performance"`
}

func (h *Handler) handleMe(c echo.Context) error {
	ctx := c.Request().Context()

	identity, ok := requester(c)
	if !ok {
		return presenter.Forbidden(c, "authentication required")
	}

	moderator, err := h.registry.Get(ctx, identity)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	performance, err := h.registry.GetPerformance(ctx, identity)
	if err != nil {
		return presenter.DomainError(c, err)
	}

	return presenter.OK(c, meResponse{Moderator: moderator, Performance: performance})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Request struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	// The relay is the only sender on output, so shutdown is signalled by
	// cancelling the connection context, never by closing the channels.
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan modgate.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Channels:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.Channels),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}

package maps

import (
	"errors"
	"strconv"

	"blitz-stats/core/logger"
	"blitz-stats/core/reconcile"
	"blitz-stats/core/wgapi"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the map catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RefreshResult is the reply of a catalog refresh.
type RefreshResult struct {
	Diff    reconcile.Diff `json:"diff"`
	Skipped int            `json:"skipped"`
}

// RegisterRoutes registers the maps routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/maps")
	group.Get("/code/:code", h.HandleGetByCode)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:id", h.HandleGet)
}

// HandleGet returns one map.
// @Summary Get Map
// @Tags maps
// @Produce json
// @Param id path int true "Map ID"
// @Success 200 {object} Map
// @Failure 404 {object} map[string]string "Not found"
// @Router /maps/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid map id"})
	}
	m, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(m)
}

// HandleGetByCode returns the map with a key.
// @Summary Get Map By Key
// @Tags maps
// @Produce json
// @Param code path string true "Map key"
// @Success 200 {object} Map
// @Failure 404 {object} map[string]string "Not found"
// @Router /maps/code/{code} [get]
func (h *Handler) HandleGetByCode(c *fiber.Ctx) error {
	m, err := h.service.ByCode(c.Context(), c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(m)
}

// HandleRefresh reconciles the catalog with a maps API response.
// @Summary Refresh Maps
// @Tags maps
// @Accept json
// @Produce json
// @Success 200 {object} RefreshResult
// @Failure 400 {object} map[string]string "Malformed response"
// @Failure 422 {object} map[string]string "Inconsistent catalog"
// @Router /maps/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	diff, skipped, err := h.service.RefreshResponse(c.Context(), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(RefreshResult{Diff: diff, Skipped: skipped})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case wgapi.IsClientError(err):
		status = fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrCodeConflict):
		status = fiber.StatusUnprocessableEntity
	default:
		logger.WithRayID(h.service.logger, c).Error("Maps request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

package tankopedia

import (
	"errors"
	"strconv"

	"blitz-stats/core/logger"
	"blitz-stats/core/reconcile"
	"blitz-stats/core/wgapi"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the tank catalog.
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

// RegisterRoutes registers the tankopedia routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/tankopedia")
	group.Get("/code/:code", h.HandleGetByCode)
	group.Get("/tier/:tier", h.HandleGetByTier)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
}

// HandleGet returns one tank.
// @Summary Get Tank
// @Description Get a tank by its id.
// @Tags tankopedia
// @Produce json
// @Param id path int true "Tank ID"
// @Success 200 {object} Tank
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not found"
// @Router /tankopedia/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tank id"})
	}
	tank, err := h.service.Get(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tank)
}

// HandleGetByCode returns the tank with a code.
// @Summary Get Tank By Code
// @Tags tankopedia
// @Produce json
// @Param code path string true "Tank code"
// @Success 200 {object} Tank
// @Failure 404 {object} map[string]string "Not found"
// @Router /tankopedia/code/{code} [get]
func (h *Handler) HandleGetByCode(c *fiber.Ctx) error {
	tank, err := h.service.ByCode(c.Context(), c.Params("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tank)
}

// HandleGetByTier lists the tanks of a tier.
// @Summary List Tanks By Tier
// @Tags tankopedia
// @Produce json
// @Param tier path int true "Tier (1-10)"
// @Success 200 {array} Tank
// @Failure 400 {object} map[string]string "Tier out of range"
// @Router /tankopedia/tier/{tier} [get]
func (h *Handler) HandleGetByTier(c *fiber.Ctx) error {
	tier, err := strconv.Atoi(c.Params("tier"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tier"})
	}
	tanks, err := h.service.ByTier(c.Context(), tier)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tanks)
}

// HandleRefresh reconciles the catalog with a vehicles API response.
// @Summary Refresh Tankopedia
// @Description Reconcile the catalog with a WG vehicles API response (v1 or v2).
// @Tags tankopedia
// @Accept json
// @Produce json
// @Success 200 {object} RefreshResult
// @Failure 400 {object} map[string]string "Malformed response"
// @Failure 422 {object} map[string]string "Inconsistent catalog"
// @Router /tankopedia/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	diff, skipped, err := h.service.RefreshResponse(c.Context(), c.Body())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(RefreshResult{Diff: diff, Skipped: skipped})
}

// HandleDelete removes a tank from the catalog.
// @Summary Delete Tank
// @Tags tankopedia
// @Produce json
// @Param id path int true "Tank ID"
// @Success 200 {object} Tank
// @Failure 404 {object} map[string]string "Not found"
// @Router /tankopedia/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid tank id"})
	}
	tank, err := h.service.Remove(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tank)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Tankopedia request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrTier), wgapi.IsClientError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrBucketRange), errors.Is(err, reconcile.ErrCodeConflict):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

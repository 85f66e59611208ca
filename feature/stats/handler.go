package stats

import (
	"bytes"
	"errors"
	"strconv"

	"blitz-stats/core/ids"
	"blitz-stats/core/logger"
	"blitz-stats/core/wgapi"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for player statistics.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stats routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stats")
	group.Post("/tanks", h.HandleIngestTanks)
	group.Post("/achievements", h.HandleIngestAchievements)
	group.Get("/tanks/:account_id", h.HandleListTanks)
	group.Get("/tank/:id", h.HandleGetTank)
	group.Get("/achievements/:account_id", h.HandleListAchievements)
	group.Get("/region/:account_id", h.HandleRegion)
}

// HandleIngestTanks stores a tanks/stats API response.
// @Summary Ingest Tank Stats
// @Description Store per-vehicle stats from a WG tanks/stats response (v1 or v2 records).
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} IngestResult
// @Failure 400 {object} map[string]string "Malformed response"
// @Router /stats/tanks [post]
func (h *Handler) HandleIngestTanks(c *fiber.Ctx) error {
	payloads, err := DecodeTankStats(bytes.NewReader(c.Body()))
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.IngestTankStats(c.Context(), payloads)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandleIngestAchievements stores an account/achievements API response.
// @Summary Ingest Achievements
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} IngestResult
// @Failure 400 {object} map[string]string "Malformed response"
// @Router /stats/achievements [post]
func (h *Handler) HandleIngestAchievements(c *fiber.Ctx) error {
	payloads, err := DecodeAchievements(bytes.NewReader(c.Body()))
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.IngestAchievements(c.Context(), Payloads(payloads))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandleListTanks lists the stats of an account.
// @Summary List Tank Stats
// @Tags stats
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {array} TankStat
// @Router /stats/tanks/{account_id} [get]
func (h *Handler) HandleListTanks(c *fiber.Ctx) error {
	accountID, ok := parseAccountID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}
	stats, err := h.service.TankStats(c.Context(), accountID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// HandleGetTank returns one stat record by its hex id.
// @Summary Get Tank Stat
// @Tags stats
// @Produce json
// @Param id path string true "24 character hex stat id"
// @Success 200 {object} TankStat
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not found"
// @Router /stats/tank/{id} [get]
func (h *Handler) HandleGetTank(c *fiber.Ctx) error {
	id, err := ids.ParseHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	stat, err := h.service.TankStat(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stat)
}

// HandleListAchievements lists the max-series snapshots of an account.
// @Summary List Max Series
// @Tags stats
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {array} MaxSeries
// @Router /stats/achievements/{account_id} [get]
func (h *Handler) HandleListAchievements(c *fiber.Ctx) error {
	accountID, ok := parseAccountID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}
	series, err := h.service.MaxSeries(c.Context(), accountID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(series)
}

// HandleRegion resolves the region of an account.
// @Summary Account Region
// @Tags stats
// @Produce json
// @Param account_id path int true "Account ID"
// @Success 200 {object} RegionInfo
// @Router /stats/region/{account_id} [get]
func (h *Handler) HandleRegion(c *fiber.Ctx) error {
	accountID, ok := parseAccountID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid account id"})
	}
	return c.JSON(h.service.Region(accountID))
}

func parseAccountID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("account_id"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if wgapi.IsClientError(err) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Stats request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

package replay

import (
	"bytes"
	"errors"

	"blitz-stats/core/transform"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SummaryRequest carries the unpacked contents of a replay.
type SummaryRequest struct {
	Meta    map[string]any `json:"meta"`
	Details []Detail       `json:"details"`
}

// Handler handles replay requests.
type Handler struct {
	registry *transform.Registry
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(reg *transform.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{registry: reg, logger: logger}
}

// RegisterRoutes registers the replay routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/replay/summary", h.HandleSummary)
	app.Post("/replay/meta", h.HandleMeta)
}

// MetaResponse is a parsed meta.json with its release.
type MetaResponse struct {
	Meta
	Release string `json:"release"`
}

// HandleMeta parses a raw meta.json.
// @Summary Parse Replay Meta
// @Description Parse a replay's meta.json and resolve its release.
// @Tags replay
// @Accept json
// @Produce json
// @Success 200 {object} MetaResponse
// @Failure 400 {object} map[string]string "Invalid meta"
// @Router /replay/meta [post]
func (h *Handler) HandleMeta(c *fiber.Ctx) error {
	meta, err := DecodeMeta(bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	release, err := Release(meta.Version)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(MetaResponse{Meta: meta, Release: release})
}

// HandleSummary summarizes an unpacked replay.
// @Summary Summarize Replay
// @Description Summarize the meta.json and battle result details of a replay.
// @Tags replay
// @Accept json
// @Produce json
// @Success 200 {object} Summary
// @Failure 400 {object} map[string]string "Invalid replay"
// @Router /replay/summary [post]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	var req SummaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	meta, ok := transform.Transform[Meta](h.registry, req.Meta)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "replay meta has no version"})
	}
	summary, err := Summarize(meta, req.Details, h.registry)
	if errors.Is(err, ErrVersionFormat) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return err
	}
	if summary.Skipped > 0 {
		h.logger.Debug("Skipped replay details", zap.Int("skipped", summary.Skipped))
	}
	return c.JSON(summary)
}

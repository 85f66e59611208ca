package conversions

import (
	"blitz-stats/core/transform"

	"github.com/gofiber/fiber/v2"
)

// Feature exposes the registered conversions for diagnostics.
type Feature struct {
	registry *transform.Registry
}

// NewFeature creates the conversions feature.
func NewFeature(reg *transform.Registry) *Feature {
	return &Feature{registry: reg}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "conversions"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.registry != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/conversions", f.HandleList)
	return nil
}

// HandleList lists every registered conversion.
// @Summary List Conversions
// @Tags conversions
// @Produce json
// @Success 200 {array} transform.Edge
// @Router /conversions [get]
func (f *Feature) HandleList(c *fiber.Ctx) error {
	return c.JSON(f.registry.Edges())
}

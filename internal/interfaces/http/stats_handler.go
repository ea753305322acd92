package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stats"
)

// StatsHandler expone estadísticas generales del sistema (protegido).
type StatsHandler struct {
	uc *stats.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *stats.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// General devuelve totales y productos con stock bajo.
func (h *StatsHandler) General(c *fiber.Ctx) error {
	out, err := h.uc.General(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

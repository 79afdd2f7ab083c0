package handler

import (
	"errors"
	"net/http"

	"parcel-admin/internal/core/apierror"
	"parcel-admin/internal/core/auth"
	"parcel-admin/internal/core/logger"
	"parcel-admin/internal/features/fares/domain"
	"parcel-admin/internal/features/fares/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FareConfigResponse wraps the fare configuration.
type FareConfigResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Data    *domain.FareConfig `json:"data"`
}

// FareHandler handles HTTP requests for the fare configuration.
type FareHandler struct {
	service ports.FareService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(service ports.FareService) *FareHandler {
	return &FareHandler{
		service: service,
	}
}

// Register mounts the fare routes. Both are restricted to superadmins.
func (h *FareHandler) Register(r fiber.Router) {
	superadmin := auth.RequireRole(auth.RoleSuperAdmin)
	r.Get("/fare-config", superadmin, h.GetConfig)
	r.Put("/fare-config", superadmin, h.UpdateConfig)
}

// GetConfig handles GET /fare-config.
// @Summary Get the fare configuration
// @Description Returns the pricing configuration, creating the defaults on first use.
// @Tags Fares
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FareConfigResponse
// @Failure 401 {object} apierror.Response
// @Failure 403 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /fare-config [get]
func (h *FareHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.service.GetConfig(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to get fare config", zap.Error(err))
		return apierror.Write(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.Status(http.StatusOK).JSON(FareConfigResponse{Success: true, Data: cfg})
}

// UpdateConfig handles PUT /fare-config.
// @Summary Update the fare configuration
// @Description Applies a partial update. Values must be non-negative; margin is a fraction up to 1.
// @Tags Fares
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param update body domain.FareUpdate true "Fields to change"
// @Success 200 {object} FareConfigResponse
// @Failure 400 {object} apierror.Response
// @Failure 403 {object} apierror.Response
// @Failure 500 {object} apierror.Response
// @Router /fare-config [put]
func (h *FareHandler) UpdateConfig(c *fiber.Ctx) error {
	var update domain.FareUpdate
	if err := c.BodyParser(&update); err != nil {
		return apierror.Write(c, http.StatusBadRequest, "Invalid request body")
	}

	cfg, err := h.service.UpdateConfig(c.UserContext(), update)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFareConfig) {
			return apierror.Write(c, http.StatusBadRequest, err.Error())
		}
		logger.Get().Error("Failed to update fare config", zap.Error(err))
		return apierror.Write(c, http.StatusInternalServerError, "Internal server error")
	}

	if admin := auth.AdminFrom(c); admin != nil {
		logger.Named("fares").Info("Fare config changed", zap.String("admin_id", admin.ID))
	}
	return c.Status(http.StatusOK).JSON(FareConfigResponse{
		Success: true,
		Message: "Fare configuration updated successfully",
		Data:    cfg,
	})
}

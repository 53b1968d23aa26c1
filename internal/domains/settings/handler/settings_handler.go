package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carousel-backend/internal/domains/settings/model"
	"carousel-backend/internal/domains/settings/service"
	"carousel-backend/internal/shared/response"
)

type SettingsHandler struct {
	settingsService service.ServiceInterface
}

func NewSettingsHandler(settingsService service.ServiceInterface) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get returns one site setting
// GET /api/v1/admin/settings/:key
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.settingsService.GetSetting(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, model.ErrSettingNotFound) {
			response.NotFound(c, "Setting not found")
			return
		}
		response.InternalServerError(c, "Failed to load setting")
		return
	}

	response.Success(c, http.StatusOK, setting)
}

// Put creates or updates one site setting. Critical keys flush the
// carousel caches as a side effect.
// PUT /api/v1/admin/settings/:key
func (h *SettingsHandler) Put(c *gin.Context) {
	key := c.Param("key")

	var req model.PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	setting, err := h.settingsService.PutSetting(c.Request.Context(), key, req.Value)
	if err != nil {
		response.InternalServerError(c, "Failed to save setting")
		return
	}

	response.Success(c, http.StatusOK, setting)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carousel-backend/internal/domains/carousel/model"
	"carousel-backend/internal/domains/carousel/render"
	"carousel-backend/internal/domains/carousel/service"
	"carousel-backend/internal/shared/response"
)

// =====================================================
// CAROUSEL HANDLER
// =====================================================

type CarouselHandler struct {
	carouselService service.ServiceInterface
}

func NewCarouselHandler(carouselService service.ServiceInterface) *CarouselHandler {
	return &CarouselHandler{
		carouselService: carouselService,
	}
}

// mapCarouselError translates domain errors to HTTP status + code.
func mapCarouselError(err error) (int, string) {
	var domainErr *model.CarouselError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case model.ErrCodeCarouselNotFound:
			return http.StatusNotFound, domainErr.Code
		case model.ErrCodeSlugTaken:
			return http.StatusConflict, domainErr.Code
		case model.ErrCodeValidation:
			return http.StatusBadRequest, domainErr.Code
		}
		return http.StatusInternalServerError, domainErr.Code
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// List returns carousel summaries, newest first
// GET /api/v1/admin/carousels
func (h *CarouselHandler) List(c *gin.Context) {
	summaries, err := h.carouselService.ListCarousels(c.Request.Context())
	if err != nil {
		statusCode, errCode := mapCarouselError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, summaries)
}

// Save creates a carousel, or fully replaces it when id is present
// POST /api/v1/admin/carousels
func (h *CarouselHandler) Save(c *gin.Context) {
	// Step 1: Bind request body
	var req model.SaveCarouselRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// Step 2: Call service (validates and persists)
	resp, err := h.carouselService.SaveCarousel(c.Request.Context(), req)
	if err != nil {
		statusCode, errCode := mapCarouselError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	statusCode := http.StatusOK
	if req.ID == 0 {
		statusCode = http.StatusCreated
	}
	response.Success(c, statusCode, resp)
}

// Get returns one carousel with its full slide payload
// GET /api/v1/admin/carousels/:id
func (h *CarouselHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid carousel ID")
		return
	}

	carousel, err := h.carouselService.GetCarousel(c.Request.Context(), id)
	if err != nil {
		statusCode, errCode := mapCarouselError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, carousel)
}

// Delete removes a carousel
// DELETE /api/v1/admin/carousels/:id
func (h *CarouselHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "Invalid carousel ID")
		return
	}

	if err := h.carouselService.DeleteCarousel(c.Request.Context(), id); err != nil {
		statusCode, errCode := mapCarouselError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// ClearCache flushes every carousel cache entry
// POST /api/v1/admin/cache/clear
func (h *CarouselHandler) ClearCache(c *gin.Context) {
	if err := h.carouselService.ClearCache(c.Request.Context()); err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, model.ErrCodeCacheClear, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

// =====================================================
// PUBLIC EMBED ENDPOINT
// =====================================================

// Embed renders a carousel fragment for page embedding. Unknown slugs
// yield an empty body, not an error.
// GET /api/v1/embed/:slug
func (h *CarouselHandler) Embed(c *gin.Context) {
	slug := c.Param("slug")
	deviceClass := render.DeviceClassFromUserAgent(c.GetHeader("User-Agent"))

	html, err := h.carouselService.RenderCarousel(c.Request.Context(), slug, deviceClass)
	if err != nil {
		response.InternalServerError(c, "Failed to render carousel")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// =====================================================
// INVALIDATION HOOKS
// =====================================================

type pageSavedRequest struct {
	Body string `json:"body"`
}

// PageSaved receives content-change signals from the CMS. When the page
// body may embed a carousel, caches are flushed.
// POST /api/v1/hooks/page-saved
func (h *CarouselHandler) PageSaved(c *gin.Context) {
	var req pageSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	flushed, err := h.carouselService.NotifyPageSaved(c.Request.Context(), req.Body)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, model.ErrCodeCacheClear, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"flushed": flushed})
}

type settingChangedRequest struct {
	Name string `json:"name"`
}

// SettingChanged receives global settings-change signals; critical
// settings flush everything.
// POST /api/v1/hooks/setting-changed
func (h *CarouselHandler) SettingChanged(c *gin.Context) {
	var req settingChangedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Name == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "setting name is required")
		return
	}

	if err := h.carouselService.NotifySettingChanged(c.Request.Context(), req.Name); err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, model.ErrCodeCacheClear, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{"acknowledged": true})
}

package advertiser

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"adops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/advertisers", h.List)
	rg.POST("/advertisers", h.Create)
	rg.GET("/advertisers/:id", h.Get)
	rg.POST("/advertisers/recalculate", h.Recalculate)
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"advertisers": list})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateAdvertiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	adv, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"advertiser": adv})
}

// Get takes either the numeric id or the advertiser name in the path.
func (h *Handler) Get(c *gin.Context) {
	adv, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"advertiser": adv})
}

func (h *Handler) Recalculate(c *gin.Context) {
	var req RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if req.Advertiser == "" {
		n, err := h.service.RecalculateAll(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"recalculated": n})
		return
	}

	agg, err := h.service.Recalculate(c.Request.Context(), req.Advertiser)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, agg)
}

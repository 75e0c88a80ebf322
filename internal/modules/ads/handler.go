package ads

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"adops/internal/pkg/response"
	"adops/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ads", h.List)
	rg.POST("/ads", h.Create)
	rg.POST("/ads/bulk", h.Bulk)
	rg.GET("/ads/:id", h.Get)
	rg.PATCH("/ads/:id", h.Update)
	rg.DELETE("/ads/:id", h.Delete)
	rg.POST("/ads/:id/publish", h.Publish)
	rg.GET("/ads/:id/occurrences", h.Occurrences)
	rg.GET("/calendar", h.Calendar)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	archived, _ := strconv.ParseBool(c.DefaultQuery("archived", "false"))

	list, err := h.service.List(c.Request.Context(), repository.AdFilter{
		Status:          c.Query("status"),
		Advertiser:      c.Query("advertiser"),
		Placement:       c.Query("placement"),
		IncludeArchived: archived,
		Limit:           limit,
		Offset:          offset,
		From:            c.Query("from"),
		To:              c.Query("to"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ads": list})
}

// Create answers 409 DUPLICATE_WARNING when the ad looks like a repeat.
// Re-sending with "force": true (or ?force=true) stores it anyway.
func (h *Handler) Create(c *gin.Context) {
	var req CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if force, _ := strconv.ParseBool(c.Query("force")); force {
		req.Force = true
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if res.Warning != nil {
		response.ErrorWithDetails(c, http.StatusConflict, "DUPLICATE_WARNING", res.Warning.Message, gin.H{
			"matched_ad": res.Warning.Match,
		})
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"ad": res.Ad})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ad, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ad": ad})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	ad, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ad": ad})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) Publish(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ad, err := h.service.MarkPublished(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ad": ad})
}

func (h *Handler) Occurrences(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dates, err := h.service.Occurrences(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ad_id": id, "dates": dates})
}

func (h *Handler) Bulk(c *gin.Context) {
	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	res, err := h.service.Bulk(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Calendar(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year and month are required")
		return
	}

	cal, err := h.service.Calendar(c.Request.Context(), year, month)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"year": year, "month": month, "days": cal})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ad ID")
		return 0, false
	}
	return id, true
}

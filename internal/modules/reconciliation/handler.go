package reconciliation

import (
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
	rg.GET("/reconciliation", h.Report)
}

func (h *Handler) Report(c *gin.Context) {
	report, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

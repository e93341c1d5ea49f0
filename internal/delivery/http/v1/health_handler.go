package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Check)
}

// Health godoc
// @Summary      Health check
// @Description  Reports the state of the database, Redis and MongoDB
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	report := h.healthUC.Check(c.Request.Context())
	if !report.Healthy {
		response.Error(c, http.StatusServiceUnavailable, "System degraded", report)
		return
	}
	response.Success(c, http.StatusOK, "System operational", report)
}

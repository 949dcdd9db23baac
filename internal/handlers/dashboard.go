// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nexcrm/crm-backend/internal/services"
	"github.com/nexcrm/crm-backend/internal/utils"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GET /dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := services.DashboardParams{
		Period:         c.Query("period"),
		PurchasePeriod: c.Query("purchase_period"),
		ProductFilter:  c.Query("purchase_product"),
	}

	data, err := h.dashboardService.GetDashboard(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, data)
}

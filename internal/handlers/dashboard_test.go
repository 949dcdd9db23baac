// internal/handlers/dashboard_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexcrm/crm-backend/internal/models"
	"github.com/nexcrm/crm-backend/internal/services"
)

func setupDashboardRouter(t *testing.T) (*gin.Engine, *gorm.DB, *models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Lead{}, &models.Client{},
		&models.Product{}, &models.Purchase{},
	))

	user := &models.User{
		Username: "dashuser",
		Email:    "dash@example.com",
		Role:     models.UserRoleMember,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)

	handler := NewDashboardHandler(services.NewDashboardService(db, time.UTC))

	r := gin.New()
	r.GET("/dashboard", func(c *gin.Context) {
		// Stand-in for the auth middleware
		c.Set("user_id", user.ID.String())
		c.Next()
	}, handler.GetDashboard)

	return r, db, user
}

func TestDashboardEndpoint(t *testing.T) {
	r, db, user := setupDashboardRouter(t)

	lead := &models.Lead{
		FirstName:   "Test",
		LastName:    "Lead",
		Status:      models.LeadStatusNew,
		Priority:    models.LeadPriorityMedium,
		CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(lead).Error)

	client := &models.Client{
		FirstName:   "Test",
		LastName:    "Client",
		Email:       "client@example.com",
		Status:      models.ClientStatusDirect,
		CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(client).Error)

	product := &models.Product{
		Name:     "Widget",
		NetPrice: decimal.RequireFromString("12.50"),
	}
	require.NoError(t, db.Create(product).Error)

	purchase := &models.Purchase{
		ClientID:    client.ID,
		ProductID:   product.ID,
		Quantity:    2,
		CreatedByID: user.ID,
	}
	require.NoError(t, db.Create(purchase).Error)

	req, _ := http.NewRequest("GET", "/dashboard?period=30days&purchase_period=30days", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)

	assert.Equal(t, float64(1), response.Data["lead_count"])
	assert.Equal(t, float64(1), response.Data["client_count"])
	assert.Equal(t, "25.00", response.Data["total_revenue"])
	assert.Equal(t, float64(2), response.Data["total_items"])
	assert.Equal(t, "30days", response.Data["selected_period"])
	assert.Equal(t, "all", response.Data["selected_purchase_product"])

	chartDates, ok := response.Data["chart_dates"].([]interface{})
	require.True(t, ok)
	assert.Len(t, chartDates, 1)
}

func TestDashboardEndpointUnknownPeriodDegradesToAll(t *testing.T) {
	r, _, _ := setupDashboardRouter(t)

	req, _ := http.NewRequest("GET", "/dashboard?period=fortnight", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "all", response.Data["selected_period"])
}

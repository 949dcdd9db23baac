// internal/services/dashboard_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
)

type DashboardServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   *DashboardService
	owner *models.User
	now   time.Time
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.owner = newTestUser(suite.T(), suite.db, "dashowner")

	suite.now = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	suite.svc = NewDashboardService(suite.db, time.UTC)
	suite.svc.now = func() time.Time { return suite.now }
}

func (suite *DashboardServiceTestSuite) createLead(createdAt time.Time, status models.LeadStatus) *models.Lead {
	lead := &models.Lead{
		FirstName:   "Test",
		LastName:    "Lead",
		Status:      status,
		Priority:    models.LeadPriorityMedium,
		CreatedByID: suite.owner.ID,
	}
	lead.CreatedAt = createdAt
	suite.Require().NoError(suite.db.Create(lead).Error)
	return lead
}

func (suite *DashboardServiceTestSuite) createClient(createdAt time.Time) *models.Client {
	client := &models.Client{
		FirstName:   "Test",
		LastName:    "Client",
		Email:       "client@example.com",
		Status:      models.ClientStatusDirect,
		CreatedByID: suite.owner.ID,
	}
	client.CreatedAt = createdAt
	suite.Require().NoError(suite.db.Create(client).Error)
	return client
}

func (suite *DashboardServiceTestSuite) createProduct(name, price string) *models.Product {
	product := &models.Product{
		Name:     name,
		NetPrice: decimal.RequireFromString(price),
	}
	suite.Require().NoError(suite.db.Create(product).Error)
	return product
}

func (suite *DashboardServiceTestSuite) createPurchase(client *models.Client, product *models.Product, qty int, createdAt time.Time) *models.Purchase {
	purchase := &models.Purchase{
		ClientID:    client.ID,
		ProductID:   product.ID,
		Quantity:    qty,
		CreatedByID: suite.owner.ID,
	}
	purchase.CreatedAt = createdAt
	suite.Require().NoError(suite.db.Create(purchase).Error)
	return purchase
}

func (suite *DashboardServiceTestSuite) TestEmptyDashboardHasEmptySeries() {
	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{})
	suite.Require().NoError(err)

	suite.Equal(int64(0), data.LeadCount)
	suite.Equal(int64(0), data.ClientCount)
	suite.Empty(data.ChartDates)
	suite.Empty(data.LeadCounts)
	suite.Empty(data.ClientCounts)
	suite.Empty(data.PurchaseChart.Dates)
	suite.Empty(data.PurchaseChart.Products)
	suite.Equal("0.00", data.TotalRevenue)
	suite.Equal(0, data.TotalItems)
	suite.Equal("all", data.SelectedPeriod)
}

func (suite *DashboardServiceTestSuite) TestChartAxisIsUnionOfLeadAndClientDays() {
	suite.createLead(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), models.LeadStatusNew)
	suite.createLead(time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), models.LeadStatusWon)
	suite.createClient(time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{})
	suite.Require().NoError(err)

	suite.Equal([]string{"2024-01-01", "2024-01-02", "2024-01-03"}, data.ChartDates)
	suite.Equal([]int{1, 0, 1}, data.LeadCounts)
	suite.Equal([]int{0, 1, 0}, data.ClientCounts)
	suite.Equal([]int{0, 0, 1}, data.WonLeadCounts)
	suite.Equal([]int{0, 0, 0}, data.LostLeadCounts)
	suite.Equal([]int{0, 0, 0}, data.ContactedLeadCounts)

	// Every series matches the axis length
	suite.Len(data.LeadCounts, len(data.ChartDates))
	suite.Len(data.ClientCounts, len(data.ChartDates))
}

func (suite *DashboardServiceTestSuite) TestStatusCountsAreLifetimeTotals() {
	suite.createLead(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), models.LeadStatusWon)
	suite.createLead(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), models.LeadStatusLost)
	suite.createLead(time.Date(2024, 1, 9, 1, 0, 0, 0, time.UTC), models.LeadStatusContacted)
	suite.createClient(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{Period: "7days"})
	suite.Require().NoError(err)

	// Summary scalars ignore the chart period
	suite.Equal(int64(3), data.LeadCount)
	suite.Equal(int64(1), data.ClientCount)
	suite.Equal(int64(1), data.WonLeadCount)
	suite.Equal(int64(1), data.LostLeadCount)
	suite.Equal(int64(1), data.ContactedLeadCount)

	// The chart excludes the 2023 lead
	suite.Equal([]string{"2024-01-08", "2024-01-09"}, data.ChartDates)
	suite.Equal([]int{0, 2}, data.LeadCounts)
	suite.Equal([]int{1, 0}, data.ClientCounts)
}

func (suite *DashboardServiceTestSuite) TestUnknownPeriodFallsBackToAll() {
	suite.createLead(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), models.LeadStatusNew)

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{Period: "yesterweek"})
	suite.Require().NoError(err)

	suite.Equal("all", data.SelectedPeriod)
	suite.Equal([]string{"2022-03-01"}, data.ChartDates)
}

func (suite *DashboardServiceTestSuite) TestPurchaseRevenueAndItemTotals() {
	client := suite.createClient(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	product := suite.createProduct("Widget", "10.00")

	suite.createPurchase(client, product, 3, time.Date(2024, 1, 6, 10, 0, 0, 0, time.UTC))
	suite.createPurchase(client, product, 5, time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{})
	suite.Require().NoError(err)

	suite.Equal("80.00", data.TotalRevenue)
	suite.Equal(8, data.TotalItems)

	suite.Equal([]string{"2024-01-06", "2024-01-07"}, data.PurchaseChart.Dates)
	series, ok := data.PurchaseChart.Products["Widget"]
	suite.Require().True(ok)
	suite.Equal([]int{3, 5}, series.Quantities)
	suite.Equal([]float64{30, 50}, series.Amounts)
}

func (suite *DashboardServiceTestSuite) TestPurchaseChartHasOwnPeriod() {
	client := suite.createClient(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	product := suite.createProduct("Widget", "2.50")

	suite.createPurchase(client, product, 1, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))
	suite.createPurchase(client, product, 2, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{
		Period:         "all",
		PurchasePeriod: "7days",
	})
	suite.Require().NoError(err)

	suite.Equal("7days", data.SelectedPurchasePeriod)
	suite.Equal([]string{"2024-01-09"}, data.PurchaseChart.Dates)
	suite.Equal("5.00", data.TotalRevenue)
	suite.Equal(2, data.TotalItems)
}

func (suite *DashboardServiceTestSuite) TestProductFilterSelectsSingleProduct() {
	client := suite.createClient(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	widget := suite.createProduct("Widget", "10.00")
	gadget := suite.createProduct("Gadget", "4.00")

	suite.createPurchase(client, widget, 1, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))
	suite.createPurchase(client, gadget, 2, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{
		ProductFilter: gadget.ID.String(),
	})
	suite.Require().NoError(err)

	suite.Len(data.PurchaseChart.Products, 1)
	_, ok := data.PurchaseChart.Products["Gadget"]
	suite.True(ok)
	suite.Equal("8.00", data.TotalRevenue)
	suite.Equal(2, data.TotalItems)
	suite.Equal(gadget.ID.String(), data.SelectedPurchaseProduct)
}

func (suite *DashboardServiceTestSuite) TestUnparsableProductFilterYieldsEmptyChart() {
	client := suite.createClient(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	product := suite.createProduct("Widget", "10.00")
	suite.createPurchase(client, product, 1, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{
		ProductFilter: "no-such-product",
	})
	suite.Require().NoError(err)

	suite.Empty(data.PurchaseChart.Dates)
	suite.Empty(data.PurchaseChart.Products)
	suite.Equal("0.00", data.TotalRevenue)
	suite.Equal(0, data.TotalItems)
}

func (suite *DashboardServiceTestSuite) TestDuplicateProductNamesStayDistinct() {
	client := suite.createClient(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	first := suite.createProduct("Widget", "10.00")
	second := suite.createProduct("Widget", "20.00")

	suite.createPurchase(client, first, 1, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))
	suite.createPurchase(client, second, 1, time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{})
	suite.Require().NoError(err)

	suite.Len(data.PurchaseChart.Products, 2)
	suite.Equal("30.00", data.TotalRevenue)
}

func (suite *DashboardServiceTestSuite) TestRecordsScopedToOwner() {
	other := newTestUser(suite.T(), suite.db, "otheruser")

	suite.createLead(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), models.LeadStatusNew)

	otherLead := &models.Lead{
		FirstName:   "Other",
		LastName:    "Lead",
		Status:      models.LeadStatusNew,
		Priority:    models.LeadPriorityMedium,
		CreatedByID: other.ID,
	}
	suite.Require().NoError(suite.db.Create(otherLead).Error)

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{})
	suite.Require().NoError(err)

	suite.Equal(int64(1), data.LeadCount)
}

func (suite *DashboardServiceTestSuite) TestLatestRecordsCappedAtFive() {
	for i := 0; i < 7; i++ {
		suite.createLead(time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC), models.LeadStatusNew)
	}

	data, err := suite.svc.GetDashboard(suite.owner.ID, DashboardParams{})
	suite.Require().NoError(err)

	suite.Len(data.LatestLeads, 5)
	// Newest first
	suite.Equal("2024-01-07", data.LatestLeads[0].CreatedAt.UTC().Format("2006-01-02"))
}

func TestDashboardServiceSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}

func TestParseTimePeriod(t *testing.T) {
	cases := map[string]TimePeriod{
		"all":      PeriodAll,
		"7days":    Period7Days,
		"30days":   Period30Days,
		"90days":   Period90Days,
		"6months":  Period6Months,
		"1year":    Period1Year,
		"":         PeriodAll,
		"garbage":  PeriodAll,
		"30 days":  PeriodAll,
		"7DAYS":    PeriodAll,
		"365days":  PeriodAll,
		"all-time": PeriodAll,
	}

	for input, want := range cases {
		if got := ParseTimePeriod(input); got != want {
			t.Errorf("ParseTimePeriod(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTimePeriodCutoff(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	if _, ok := PeriodAll.Cutoff(now); ok {
		t.Error("PeriodAll should have no cutoff")
	}

	cutoff, ok := Period7Days.Cutoff(now)
	if !ok {
		t.Fatal("Period7Days should have a cutoff")
	}
	want := time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	if !cutoff.Equal(want) {
		t.Errorf("Period7Days cutoff = %v, want %v", cutoff, want)
	}
}

func TestSortedDayUnion(t *testing.T) {
	union := sortedDayUnion(
		map[string]int{"2024-01-03": 1, "2024-01-01": 2},
		map[string]int{"2024-01-02": 1, "2024-01-03": 4},
	)

	want := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	if len(union) != len(want) {
		t.Fatalf("union length = %d, want %d", len(union), len(want))
	}
	for i := range want {
		if union[i] != want[i] {
			t.Errorf("union[%d] = %q, want %q", i, union[i], want[i])
		}
	}

	if got := sortedDayUnion(); len(got) != 0 {
		t.Errorf("empty union should be empty, got %v", got)
	}
}

// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
)

// DashboardService builds the date-indexed, zero-filled chart payload the
// dashboard front end consumes. All queries are scoped to the requesting user.
type DashboardService struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(db *gorm.DB, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{
		db:  db,
		loc: loc,
		now: time.Now,
	}
}

// DashboardParams carries the raw filter values from the request. Unrecognized
// period strings degrade to "all"; ProductFilter is "all" or a product id.
type DashboardParams struct {
	Period         string `json:"period"`
	PurchasePeriod string `json:"purchase_period"`
	ProductFilter  string `json:"purchase_product"`
}

// ProductSeries is one product's purchase history aligned to the purchase
// chart's shared date axis.
type ProductSeries struct {
	Dates      []string  `json:"dates"`
	Quantities []int     `json:"quantities"`
	Amounts    []float64 `json:"amounts"`
}

type PurchaseChartData struct {
	Dates    []string                 `json:"dates"`
	Products map[string]ProductSeries `json:"products"`
}

type DashboardData struct {
	LeadCount          int64  `json:"lead_count"`
	ClientCount        int64  `json:"client_count"`
	WonLeadCount       int64  `json:"won_lead_count"`
	LostLeadCount      int64  `json:"lost_lead_count"`
	ContactedLeadCount int64  `json:"contacted_lead_count"`

	LatestLeads   []models.Lead   `json:"latest_leads"`
	LatestClients []models.Client `json:"latest_clients"`

	ChartDates          []string `json:"chart_dates"`
	LeadCounts          []int    `json:"lead_counts"`
	ClientCounts        []int    `json:"client_counts"`
	WonLeadCounts       []int    `json:"won_lead_counts"`
	LostLeadCounts      []int    `json:"lost_lead_counts"`
	ContactedLeadCounts []int    `json:"contacted_lead_counts"`

	PurchaseChart PurchaseChartData `json:"purchase_chart_data"`
	AllProducts   []models.Product  `json:"all_products"`
	TotalRevenue  string            `json:"total_revenue"`
	TotalItems    int               `json:"total_items"`

	SelectedPeriod          string `json:"selected_period"`
	SelectedPurchasePeriod  string `json:"selected_purchase_period"`
	SelectedPurchaseProduct string `json:"selected_purchase_product"`
}

func (s *DashboardService) GetDashboard(userID uuid.UUID, params DashboardParams) (*DashboardData, error) {
	period := ParseTimePeriod(params.Period)

	purchasePeriodRaw := params.PurchasePeriod
	if purchasePeriodRaw == "" {
		purchasePeriodRaw = string(Period30Days)
	}
	purchasePeriod := ParseTimePeriod(purchasePeriodRaw)

	productFilter := params.ProductFilter
	if productFilter == "" {
		productFilter = "all"
	}

	data := &DashboardData{
		SelectedPeriod:          string(period),
		SelectedPurchasePeriod:  string(purchasePeriod),
		SelectedPurchaseProduct: productFilter,
	}

	// Summary scalars and latest records are always unfiltered by period.
	s.db.Model(&models.Lead{}).Where("created_by_id = ?", userID).Count(&data.LeadCount)
	s.db.Model(&models.Client{}).Where("created_by_id = ?", userID).Count(&data.ClientCount)
	s.db.Model(&models.Lead{}).Where("created_by_id = ? AND status = ?", userID, models.LeadStatusWon).Count(&data.WonLeadCount)
	s.db.Model(&models.Lead{}).Where("created_by_id = ? AND status = ?", userID, models.LeadStatusLost).Count(&data.LostLeadCount)
	s.db.Model(&models.Lead{}).Where("created_by_id = ? AND status = ?", userID, models.LeadStatusContacted).Count(&data.ContactedLeadCount)

	if err := s.db.Where("created_by_id = ?", userID).
		Order("created_at DESC").Limit(5).Find(&data.LatestLeads).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch latest leads: %w", err)
	}
	if err := s.db.Where("created_by_id = ?", userID).
		Order("created_at DESC").Limit(5).Find(&data.LatestClients).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch latest clients: %w", err)
	}

	now := s.now()

	// Lead and client series: one pass over the filtered records builds sparse
	// per-day maps, then everything is aligned to one shared axis.
	leadsByDay := make(map[string]int)
	wonByDay := make(map[string]int)
	lostByDay := make(map[string]int)
	contactedByDay := make(map[string]int)

	var leads []models.Lead
	leadQuery := s.db.Select("status", "created_at").Where("created_by_id = ?", userID)
	if cutoff, ok := period.Cutoff(now); ok {
		leadQuery = leadQuery.Where("created_at >= ?", cutoff)
	}
	if err := leadQuery.Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}

	for _, lead := range leads {
		day := s.bucketDay(lead.CreatedAt)
		leadsByDay[day]++
		switch lead.Status {
		case models.LeadStatusWon:
			wonByDay[day]++
		case models.LeadStatusLost:
			lostByDay[day]++
		case models.LeadStatusContacted:
			contactedByDay[day]++
		}
	}

	clientsByDay := make(map[string]int)

	var clients []models.Client
	clientQuery := s.db.Select("created_at").Where("created_by_id = ?", userID)
	if cutoff, ok := period.Cutoff(now); ok {
		clientQuery = clientQuery.Where("created_at >= ?", cutoff)
	}
	if err := clientQuery.Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}

	for _, client := range clients {
		clientsByDay[s.bucketDay(client.CreatedAt)]++
	}

	data.ChartDates = sortedDayUnion(leadsByDay, clientsByDay, wonByDay, lostByDay, contactedByDay)
	data.LeadCounts = fillSeries(data.ChartDates, leadsByDay)
	data.ClientCounts = fillSeries(data.ChartDates, clientsByDay)
	data.WonLeadCounts = fillSeries(data.ChartDates, wonByDay)
	data.LostLeadCounts = fillSeries(data.ChartDates, lostByDay)
	data.ContactedLeadCounts = fillSeries(data.ChartDates, contactedByDay)

	// Purchase chart with its own period and optional product filter.
	chart, revenue, items, err := s.buildPurchaseChart(userID, purchasePeriod, productFilter, now)
	if err != nil {
		return nil, err
	}
	data.PurchaseChart = chart
	data.TotalRevenue = revenue.StringFixed(2)
	data.TotalItems = items

	if err := s.db.Order("name ASC").Find(&data.AllProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return data, nil
}

type productBucket struct {
	name       string
	quantities map[string]int
	amounts    map[string]decimal.Decimal
}

func (s *DashboardService) buildPurchaseChart(userID uuid.UUID, period TimePeriod, productFilter string, now time.Time) (PurchaseChartData, decimal.Decimal, int, error) {
	chart := PurchaseChartData{
		Dates:    []string{},
		Products: make(map[string]ProductSeries),
	}
	revenue := decimal.Zero
	items := 0

	var purchases []models.Purchase
	if productFilter == "all" {
		query := s.purchaseQuery(userID, period, now)
		if err := query.Find(&purchases).Error; err != nil {
			return chart, revenue, items, fmt.Errorf("failed to fetch purchases: %w", err)
		}
	} else if productID, err := uuid.Parse(productFilter); err == nil {
		query := s.purchaseQuery(userID, period, now).Where("product_id = ?", productID)
		if err := query.Find(&purchases).Error; err != nil {
			return chart, revenue, items, fmt.Errorf("failed to fetch purchases: %w", err)
		}
	}
	// A filter value that is neither "all" nor a valid id selects nothing:
	// stale UI selections render an empty chart instead of failing.

	buckets := make(map[uuid.UUID]*productBucket)
	order := make([]uuid.UUID, 0)

	for _, purchase := range purchases {
		day := s.bucketDay(purchase.CreatedAt)
		qty := purchase.Quantity
		amount := purchase.Product.NetPrice.Mul(decimal.NewFromInt(int64(qty)))

		bucket, ok := buckets[purchase.ProductID]
		if !ok {
			bucket = &productBucket{
				name:       purchase.Product.Name,
				quantities: make(map[string]int),
				amounts:    make(map[string]decimal.Decimal),
			}
			buckets[purchase.ProductID] = bucket
			order = append(order, purchase.ProductID)
		}

		bucket.quantities[day] += qty
		bucket.amounts[day] = bucket.amounts[day].Add(amount)

		revenue = revenue.Add(amount)
		items += qty
	}

	dayMaps := make([]map[string]int, 0, len(buckets))
	for _, bucket := range buckets {
		dayMaps = append(dayMaps, bucket.quantities)
	}
	chart.Dates = sortedDayUnion(dayMaps...)

	nameCounts := make(map[string]int)
	for _, bucket := range buckets {
		nameCounts[bucket.name]++
	}

	for _, productID := range order {
		bucket := buckets[productID]

		// Identically named products stay distinct series.
		label := bucket.name
		if nameCounts[bucket.name] > 1 {
			label = fmt.Sprintf("%s (%s)", bucket.name, productID.String()[:8])
		}

		series := ProductSeries{
			Dates:      chart.Dates,
			Quantities: fillSeries(chart.Dates, bucket.quantities),
			Amounts:    make([]float64, 0, len(chart.Dates)),
		}
		for _, day := range chart.Dates {
			amount, ok := bucket.amounts[day]
			if !ok {
				amount = decimal.Zero
			}
			series.Amounts = append(series.Amounts, amount.InexactFloat64())
		}
		chart.Products[label] = series
	}

	return chart, revenue, items, nil
}

func (s *DashboardService) purchaseQuery(userID uuid.UUID, period TimePeriod, now time.Time) *gorm.DB {
	query := s.db.Preload("Product").Where("created_by_id = ?", userID)
	if cutoff, ok := period.Cutoff(now); ok {
		query = query.Where("created_at >= ?", cutoff)
	}
	return query
}

// bucketDay collapses a timestamp to its calendar day in the reporting
// timezone.
func (s *DashboardService) bucketDay(t time.Time) string {
	return t.In(s.loc).Format("2006-01-02")
}

// sortedDayUnion merges the keys of every sparse per-day map into one sorted,
// deduplicated axis. Empty input produces an empty axis, not a zero axis.
func sortedDayUnion(maps ...map[string]int) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		for day := range m {
			seen[day] = struct{}{}
		}
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// fillSeries aligns a sparse per-day map to the shared axis, substituting 0
// for days with no records.
func fillSeries(axis []string, counts map[string]int) []int {
	filled := make([]int, 0, len(axis))
	for _, day := range axis {
		filled = append(filled, counts[day])
	}
	return filled
}

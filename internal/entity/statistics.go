package entity

import "github.com/shopspring/decimal"

// ItemSales is a best-seller row: cumulative quantity sold for one item.
type ItemSales struct {
	Name     string `bun:"name"`
	Quantity int64  `bun:"quantity"`
}

// Statistics aggregates historical orders, excluding cancelled ones. The
// zero value is the degraded result reported when aggregation fails.
type Statistics struct {
	TotalOrders     int64           `json:"total_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	AvgOrderValue   decimal.Decimal `json:"avg_order_value"`
	UniqueCustomers int64           `json:"unique_customers"`
	PopularItems    []ItemSales     `json:"popular_items"`
}

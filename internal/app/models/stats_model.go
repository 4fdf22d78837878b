package models

import "github.com/shopspring/decimal"

// DashboardStats aggregates the back-office landing page counters. Each
// counter independently degrades to zero when the store is unreachable.
type DashboardStats struct {
	TotalCustomers int             `json:"total_customers"`
	TotalCars      int             `json:"total_cars"`
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

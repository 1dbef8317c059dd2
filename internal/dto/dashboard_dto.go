package dto

import "github.com/shopspring/decimal"

// DashboardMetricsResponse backs the dashboard cards: catalog size, stock
// health and sales position at a glance.
type DashboardMetricsResponse struct {
	TotalProducts  int             `json:"total_products"`
	TotalStock     int             `json:"total_stock"`
	LowStockCount  int             `json:"low_stock_count"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TodaySales     decimal.Decimal `json:"today_sales"`
	TodayInvoices  int             `json:"today_invoices"`
	PendingCount   int             `json:"pending_count"`
	PendingAmount  decimal.Decimal `json:"pending_amount"`
}

type CategorySalesRow struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type MonthlySalesRow struct {
	Month    string          `json:"month"` // YYYY-MM
	Sales    decimal.Decimal `json:"sales"`
	Invoices int             `json:"invoices"`
}

// SalesReportResponse backs the reports page. Revenue figures only count
// paid invoices; pending and cancelled ones are excluded.
type SalesReportResponse struct {
	ByCategory     []CategorySalesRow `json:"by_category"`
	Monthly        []MonthlySalesRow  `json:"monthly"`
	PaidTotal      decimal.Decimal    `json:"paid_total"`
	ItemsSold      int                `json:"items_sold"`
	AverageInvoice decimal.Decimal    `json:"average_invoice"`
}

package service

import (
	"context"
	"sort"
	"time"

	"github.com/Praborkar/Inventory-Management-billing-System/internal/dto"
	"github.com/Praborkar/Inventory-Management-billing-System/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardService aggregates catalog and invoice data for the dashboard
// cards and the sales report. Aggregation runs in memory over full scans;
// at the catalog sizes this system targets that is cheaper than keeping
// SQL rollups in sync.
type DashboardService interface {
	Metrics(ctx context.Context) (*dto.DashboardMetricsResponse, error)
	SalesReport(ctx context.Context) (*dto.SalesReportResponse, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
}

func NewDashboardService(productRepo repository.ProductRepository, invoiceRepo repository.InvoiceRepository) DashboardService {
	return &dashboardService{productRepo: productRepo, invoiceRepo: invoiceRepo}
}

func (s *dashboardService) Metrics(ctx context.Context) (*dto.DashboardMetricsResponse, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardMetricsResponse{
		TotalProducts: len(products),
		TotalSales:    decimal.Zero,
		TodaySales:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}

	for _, p := range products {
		resp.TotalStock += p.Quantity
		if p.Quantity <= p.LowStockThreshold {
			resp.LowStockCount++
		}
	}

	today := time.Now().Format("2006-01-02")
	for _, inv := range invoices {
		if inv.Status == "cancelled" {
			continue
		}
		resp.TotalSales = resp.TotalSales.Add(inv.Total)
		if inv.CreatedAt.Format("2006-01-02") == today {
			resp.TodaySales = resp.TodaySales.Add(inv.Total)
			resp.TodayInvoices++
		}
		if inv.Status == "pending" {
			resp.PendingCount++
			resp.PendingAmount = resp.PendingAmount.Add(inv.Total)
		}
	}
	return resp, nil
}

func (s *dashboardService) SalesReport(ctx context.Context) (*dto.SalesReportResponse, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Product id → category, for attributing line revenue. Lines pointing at
	// deleted products fall into "Uncategorized".
	categoryOf := make(map[string]string, len(products))
	for _, p := range products {
		categoryOf[p.ID.String()] = p.Category
	}

	byCategory := make(map[string]decimal.Decimal)
	byMonth := make(map[string]*dto.MonthlySalesRow)
	paidTotal := decimal.Zero
	itemsSold := 0
	paidCount := 0

	for _, inv := range invoices {
		if inv.Status != "paid" {
			continue
		}
		paidCount++
		paidTotal = paidTotal.Add(inv.Total)

		month := inv.CreatedAt.Format("2006-01")
		row, ok := byMonth[month]
		if !ok {
			row = &dto.MonthlySalesRow{Month: month, Sales: decimal.Zero}
			byMonth[month] = row
		}
		row.Sales = row.Sales.Add(inv.Total)
		row.Invoices++

		for _, item := range inv.Items {
			itemsSold += item.Quantity
			category, ok := categoryOf[item.ProductID.String()]
			if !ok {
				category = "Uncategorized"
			}
			current, ok := byCategory[category]
			if !ok {
				current = decimal.Zero
			}
			byCategory[category] = current.Add(item.Total)
		}
	}

	resp := &dto.SalesReportResponse{
		ByCategory:     make([]dto.CategorySalesRow, 0, len(byCategory)),
		Monthly:        make([]dto.MonthlySalesRow, 0, len(byMonth)),
		PaidTotal:      paidTotal,
		ItemsSold:      itemsSold,
		AverageInvoice: decimal.Zero,
	}
	for category, revenue := range byCategory {
		resp.ByCategory = append(resp.ByCategory, dto.CategorySalesRow{Category: category, Revenue: revenue})
	}
	sort.Slice(resp.ByCategory, func(i, j int) bool {
		return resp.ByCategory[i].Revenue.GreaterThan(resp.ByCategory[j].Revenue)
	})
	for _, row := range byMonth {
		resp.Monthly = append(resp.Monthly, *row)
	}
	sort.Slice(resp.Monthly, func(i, j int) bool {
		return resp.Monthly[i].Month < resp.Monthly[j].Month
	})
	if paidCount > 0 {
		resp.AverageInvoice = paidTotal.Div(decimal.NewFromInt(int64(paidCount))).Round(2)
	}
	return resp, nil
}

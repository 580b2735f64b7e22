package service

import (
	"time"

	"github.com/laptopstore-next/internal/models"
	"github.com/laptopstore-next/internal/repository"
)

// DashboardService 仪表盘统计服务
// 营收口径统一为已签收订单
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		orderRepo:     orderRepo,
		productRepo:   productRepo,
	}
}

// Overview 仪表盘总览
type Overview struct {
	RevenueTotal    float64          `json:"revenue_total"`
	RevenueMonth    float64          `json:"revenue_month"`
	RevenueToday    float64          `json:"revenue_today"`
	OrdersTotal     int64            `json:"orders_total"`
	DeliveredOrders int64            `json:"delivered_orders"`
	CustomersTotal  int64            `json:"customers_total"`
	ProductsOnSale  int64            `json:"products_on_sale"`
	AvgOrderValue   float64          `json:"avg_order_value"`
	StatusCounts    map[string]int64 `json:"status_counts"`
	LowStock        []models.Product `json:"low_stock"`
}

// GetOverview 总览数据
func (s *DashboardService) GetOverview(now time.Time) (*Overview, error) {
	row, err := s.dashboardRepo.GetOverview(now)
	if err != nil {
		return nil, err
	}
	counts, err := s.orderRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.ListLowStock(5, 10)
	if err != nil {
		return nil, err
	}
	return &Overview{
		RevenueTotal:    row.RevenueTotal,
		RevenueMonth:    row.RevenueMonth,
		RevenueToday:    row.RevenueToday,
		OrdersTotal:     row.OrdersTotal,
		DeliveredOrders: row.DeliveredOrders,
		CustomersTotal:  row.CustomersTotal,
		ProductsOnSale:  row.ProductsOnSale,
		AvgOrderValue:   row.AvgOrderValue,
		StatusCounts:    counts,
		LowStock:        lowStock,
	}, nil
}

// RevenueTrend 营收趋势（day 或 month 粒度）
func (s *DashboardService) RevenueTrend(granularity string, startAt, endAt time.Time) ([]repository.RevenueTrendRow, error) {
	if endAt.Before(startAt) {
		return nil, ErrInvalidParams
	}
	if granularity == "month" {
		return s.dashboardRepo.GetRevenueByMonth(startAt, endAt)
	}
	return s.dashboardRepo.GetRevenueByDay(startAt, endAt)
}

// RevenueByPaymentMethod 按支付方式统计营收
func (s *DashboardService) RevenueByPaymentMethod(startAt, endAt time.Time) ([]repository.PaymentMethodRevenueRow, error) {
	if endAt.Before(startAt) {
		return nil, ErrInvalidParams
	}
	return s.dashboardRepo.GetRevenueByPaymentMethod(startAt, endAt)
}

// TopProducts 商品营收排行
func (s *DashboardService) TopProducts(startAt, endAt time.Time, limit int) ([]repository.TopProductRow, error) {
	if endAt.Before(startAt) {
		return nil, ErrInvalidParams
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.dashboardRepo.GetTopProducts(startAt, endAt, limit)
}

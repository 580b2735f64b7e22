package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/laptopstore-next/internal/constants"
	"github.com/laptopstore-next/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘与报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。营收口径统一为已送达订单。
type DashboardRepository interface {
	GetOverview(now time.Time) (DashboardOverviewRow, error)
	GetRevenueByDay(startAt, endAt time.Time) ([]RevenueTrendRow, error)
	GetRevenueByMonth(startAt, endAt time.Time) ([]RevenueTrendRow, error)
	GetRevenueByPaymentMethod(startAt, endAt time.Time) ([]PaymentMethodRevenueRow, error)
	GetTopProducts(startAt, endAt time.Time, limit int) ([]TopProductRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	RevenueTotal    float64
	RevenueMonth    float64
	RevenueToday    float64
	OrdersTotal     int64
	DeliveredOrders int64
	CustomersTotal  int64
	ProductsOnSale  int64
	AvgOrderValue   float64
}

// RevenueTrendRow 营收趋势统计（按日或按月）
type RevenueTrendRow struct {
	Period  string
	Revenue float64
	Orders  int64
}

// PaymentMethodRevenueRow 按支付方式统计
type PaymentMethodRevenueRow struct {
	Method  string
	Orders  int64
	Revenue float64
}

// TopProductRow 商品营收排行原始行
type TopProductRow struct {
	ProductID   uint
	ProductName string
	Quantity    int64
	Revenue     float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// deliveredOrderBase 营收统计基准查询（已送达订单）
func (r *GormDashboardRepository) deliveredOrderBase() *gorm.DB {
	return r.db.Model(&models.Order{}).Where("status = ?", constants.OrderStatusDelivered)
}

// GetOverview 获取仪表盘总览
func (r *GormDashboardRepository) GetOverview(now time.Time) (DashboardOverviewRow, error) {
	var result DashboardOverviewRow

	if err := r.deliveredOrderBase().
		Select("COALESCE(SUM(total_money), 0)").
		Scan(&result.RevenueTotal).Error; err != nil {
		return result, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := r.deliveredOrderBase().
		Where("created_at >= ?", monthStart).
		Select("COALESCE(SUM(total_money), 0)").
		Scan(&result.RevenueMonth).Error; err != nil {
		return result, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := r.deliveredOrderBase().
		Where("created_at >= ?", dayStart).
		Select("COALESCE(SUM(total_money), 0)").
		Scan(&result.RevenueToday).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Order{}).Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := r.deliveredOrderBase().Count(&result.DeliveredOrders).Error; err != nil {
		return result, err
	}
	if result.DeliveredOrders > 0 {
		result.AvgOrderValue = result.RevenueTotal / float64(result.DeliveredOrders)
	}

	if err := r.db.Model(&models.User{}).
		Where("role = ?", constants.RoleCustomer).
		Count(&result.CustomersTotal).Error; err != nil {
		return result, err
	}

	if err := r.db.Model(&models.Product{}).
		Where("status = ?", constants.ProductStatusOn).
		Count(&result.ProductsOnSale).Error; err != nil {
		return result, err
	}

	return result, nil
}

// GetRevenueByDay 按日营收趋势
func (r *GormDashboardRepository) GetRevenueByDay(startAt, endAt time.Time) ([]RevenueTrendRow, error) {
	return r.revenueTrend("CAST(date(created_at) AS TEXT)", startAt, endAt)
}

// GetRevenueByMonth 按月营收趋势
func (r *GormDashboardRepository) GetRevenueByMonth(startAt, endAt time.Time) ([]RevenueTrendRow, error) {
	return r.revenueTrend(r.monthExpr(), startAt, endAt)
}

func (r *GormDashboardRepository) revenueTrend(periodExpr string, startAt, endAt time.Time) ([]RevenueTrendRow, error) {
	var rows []RevenueTrendRow
	if err := r.deliveredOrderBase().
		Select(fmt.Sprintf("%s AS period, COALESCE(SUM(total_money), 0) AS revenue, COUNT(*) AS orders", periodExpr)).
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group(periodExpr).
		Order("period ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// monthExpr 按数据库方言生成 YYYY-MM 分组表达式
func (r *GormDashboardRepository) monthExpr() string {
	dialect := ""
	if r.db != nil && r.db.Dialector != nil {
		dialect = strings.ToLower(strings.TrimSpace(r.db.Dialector.Name()))
	}
	switch dialect {
	case "postgres", "postgresql":
		return "to_char(created_at, 'YYYY-MM')"
	default:
		return "strftime('%Y-%m', created_at)"
	}
}

// GetRevenueByPaymentMethod 按支付方式统计营收
func (r *GormDashboardRepository) GetRevenueByPaymentMethod(startAt, endAt time.Time) ([]PaymentMethodRevenueRow, error) {
	var rows []PaymentMethodRevenueRow
	if err := r.deliveredOrderBase().
		Select("payment_method AS method, COUNT(*) AS orders, COALESCE(SUM(total_money), 0) AS revenue").
		Where("created_at >= ? AND created_at < ?", startAt, endAt).
		Group("payment_method").
		Order("revenue DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTopProducts 按营收排行的商品榜单
func (r *GormDashboardRepository) GetTopProducts(startAt, endAt time.Time, limit int) ([]TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TopProductRow
	if err := r.db.Model(&models.OrderDetail{}).
		Select("order_details.product_id AS product_id, order_details.product_name AS product_name, "+
			"COALESCE(SUM(order_details.quantity), 0) AS quantity, COALESCE(SUM(order_details.total_price), 0) AS revenue").
		Joins("JOIN orders ON orders.id = order_details.order_id").
		Where("orders.status = ? AND orders.created_at >= ? AND orders.created_at < ?",
			constants.OrderStatusDelivered, startAt, endAt).
		Group("order_details.product_id, order_details.product_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

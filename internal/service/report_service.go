package service

import (
	"fmt"
	"time"

	"github.com/laptopstore-next/internal/logger"
	"github.com/laptopstore-next/internal/repository"

	"github.com/xuri/excelize/v2"
)

// ReportService 报表导出服务（Excel）
type ReportService struct {
	orderRepo     repository.OrderRepository
	dashboardRepo repository.DashboardRepository
}

// NewReportService 创建报表服务
func NewReportService(orderRepo repository.OrderRepository, dashboardRepo repository.DashboardRepository) *ReportService {
	return &ReportService{orderRepo: orderRepo, dashboardRepo: dashboardRepo}
}

// ExportOrders 按筛选条件导出订单明细
func (s *ReportService) ExportOrders(filter repository.OrderListFilter) ([]byte, string, error) {
	orders, err := s.orderRepo.ListAdminAll(filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnw("report_close_workbook_failed", "error", err)
		}
	}()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Order No", "Created At", "Customer", "Phone", "Email", "Address",
		"Payment Method", "Payment Status", "Status",
		"Subtotal", "Shipping Fee", "Total",
	}
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return nil, "", err
	}
	for i, order := range orders {
		cells := []interface{}{
			order.OrderNo,
			order.CreatedAt.Format("2006-01-02 15:04:05"),
			order.FullName,
			order.Phone,
			order.Email,
			order.Address,
			order.PaymentMethod,
			order.PaymentStatus,
			order.Status,
			order.Subtotal.String(),
			order.ShippingFee.String(),
			order.TotalMoney.String(),
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102_150405"))
	logger.Infow("report_orders_exported", "rows", len(orders), "filename", filename)
	return buf.Bytes(), filename, nil
}

// ExportRevenue 导出营收报表（趋势 / 支付方式 / 商品排行三个工作表）
func (s *ReportService) ExportRevenue(granularity string, startAt, endAt time.Time) ([]byte, string, error) {
	if endAt.Before(startAt) {
		return nil, "", ErrInvalidParams
	}

	var trend []repository.RevenueTrendRow
	var err error
	if granularity == "month" {
		trend, err = s.dashboardRepo.GetRevenueByMonth(startAt, endAt)
	} else {
		trend, err = s.dashboardRepo.GetRevenueByDay(startAt, endAt)
	}
	if err != nil {
		return nil, "", err
	}
	methods, err := s.dashboardRepo.GetRevenueByPaymentMethod(startAt, endAt)
	if err != nil {
		return nil, "", err
	}
	topProducts, err := s.dashboardRepo.GetTopProducts(startAt, endAt, 20)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warnw("report_close_workbook_failed", "error", err)
		}
	}()

	trendSheet := "Revenue"
	f.SetSheetName("Sheet1", trendSheet)
	if err := writeRow(f, trendSheet, 1, toCells([]string{"Period", "Orders", "Revenue"})); err != nil {
		return nil, "", err
	}
	for i, row := range trend {
		if err := writeRow(f, trendSheet, i+2, []interface{}{row.Period, row.Orders, row.Revenue}); err != nil {
			return nil, "", err
		}
	}

	methodSheet := "Payment Methods"
	if _, err := f.NewSheet(methodSheet); err != nil {
		return nil, "", err
	}
	if err := writeRow(f, methodSheet, 1, toCells([]string{"Method", "Orders", "Revenue"})); err != nil {
		return nil, "", err
	}
	for i, row := range methods {
		if err := writeRow(f, methodSheet, i+2, []interface{}{row.Method, row.Orders, row.Revenue}); err != nil {
			return nil, "", err
		}
	}

	productSheet := "Top Products"
	if _, err := f.NewSheet(productSheet); err != nil {
		return nil, "", err
	}
	if err := writeRow(f, productSheet, 1, toCells([]string{"Product", "Quantity", "Revenue"})); err != nil {
		return nil, "", err
	}
	for i, row := range topProducts {
		if err := writeRow(f, productSheet, i+2, []interface{}{row.ProductName, row.Quantity, row.Revenue}); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("revenue_%s_%s.xlsx", startAt.Format("20060102"), endAt.Format("20060102"))
	logger.Infow("report_revenue_exported", "from", startAt, "to", endAt, "filename", filename)
	return buf.Bytes(), filename, nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, value := range values {
		cells[i] = value
	}
	return cells
}

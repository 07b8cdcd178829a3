package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Konaisya/build-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the orders overview workbook: a summary sheet with
// per-status counts and a detail sheet listing every order.
func (g *Generator) Generate(report model.OrdersReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	detailSheet := "Orders"
	file.NewSheet(detailSheet)
	if err := g.writeDetail(file, detailSheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.OrdersReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	totalPrice := 0.0
	byStatus := map[model.OrderStatus]int{}
	for _, order := range report.Orders {
		totalPrice += order.ContractPrice
		byStatus[order.Status]++
	}

	set("A1", "Generated at")
	set("B1", report.GeneratedAt.Format("2006-01-02 15:04"))
	set("A2", "Orders total")
	set("B2", len(report.Orders))
	set("A3", "Contract price total")
	set("B3", totalPrice)

	tableRow := 5
	set(fmt.Sprintf("A%d", tableRow), "Status")
	set(fmt.Sprintf("B%d", tableRow), "Count")

	statuses := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusApproved,
		model.OrderStatusInProgress,
		model.OrderStatusAwaitingPayment,
		model.OrderStatusPaid,
		model.OrderStatusAwaitingSignOff,
		model.OrderStatusSigned,
		model.OrderStatusCompleted,
		model.OrderStatusCancelled,
		model.OrderStatusSold,
	}
	row := tableRow
	for _, status := range statuses {
		count, ok := byStatus[status]
		if !ok {
			continue
		}
		row++
		set(fmt.Sprintf("A%d", row), string(status))
		set(fmt.Sprintf("B%d", row), count)
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 18)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.OrdersReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{"ID", "Customer", "House", "Status", "Contract price", "Created", "Paid", "Signed off", "Completed"}
	for i, header := range headers {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		set(fmt.Sprintf("%s1", column), header)
	}

	for i, order := range report.Orders {
		row := i + 2
		customer := ""
		if order.User != nil {
			customer = order.User.Name
		}
		house := ""
		if order.House != nil {
			house = order.House.Name
		}
		set(fmt.Sprintf("A%d", row), order.ID)
		set(fmt.Sprintf("B%d", row), customer)
		set(fmt.Sprintf("C%d", row), house)
		set(fmt.Sprintf("D%d", row), string(order.Status))
		set(fmt.Sprintf("E%d", row), order.ContractPrice)
		set(fmt.Sprintf("F%d", row), formatDate(&order.CreateDate))
		set(fmt.Sprintf("G%d", row), formatDate(order.PaymentDate))
		set(fmt.Sprintf("H%d", row), formatDate(order.SignOffDate))
		set(fmt.Sprintf("I%d", row), formatDate(order.CompletionDate))
	}

	_ = file.SetColWidth(sheet, "A", "A", 8)
	_ = file.SetColWidth(sheet, "B", "D", 24)
	_ = file.SetColWidth(sheet, "E", "I", 16)
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/monazzem/amlak-api/internal/models"
	"github.com/monazzem/amlak-api/internal/repository"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportService struct {
	installmentRepo repository.InstallmentRepository
	contractRepo    repository.ContractRepository
}

func NewReportService(
	installmentRepo repository.InstallmentRepository,
	contractRepo repository.ContractRepository,
) *ReportService {
	return &ReportService{
		installmentRepo: installmentRepo,
		contractRepo:    contractRepo,
	}
}

// installmentRow flattens one installment with its joined contract data.
// Missing joins degrade to a placeholder, never an error.
type installmentRow struct {
	ID           uint    `json:"id"`
	ContractNo   string  `json:"contract_no"`
	PropertyCode string  `json:"property_code"`
	TenantName   string  `json:"tenant_name"`
	DueDate      string  `json:"due_date"`
	Amount       float64 `json:"amount"`
	Status       string  `json:"status"`
	PaidAt       string  `json:"paid_at,omitempty"`
}

// InstallmentReport is the JSON form of the installments report: the matched
// rows plus the ledger projection of the matched set.
type InstallmentReport struct {
	Rows   []installmentRow  `json:"rows"`
	Totals models.LedgerView `json:"totals"`
}

func (s *ReportService) installmentRows(ctx context.Context, query *repository.ListQuery) ([]installmentRow, []models.Installment, error) {
	// Reports are not paginated
	query.PerPage = 0

	installments, _, err := s.installmentRepo.List(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	rows := make([]installmentRow, 0, len(installments))
	for i := range installments {
		inst := &installments[i]

		row := installmentRow{
			ID:           inst.ID,
			ContractNo:   "-",
			PropertyCode: "-",
			TenantName:   "-",
			DueDate:      inst.DueDate.Format(models.DateLayout),
			Amount:       inst.Amount,
			Status:       inst.DisplayStatus(now),
		}
		if inst.Contract.ID != 0 {
			row.ContractNo = inst.Contract.ContractNo
			if inst.Contract.Property.ID != 0 {
				row.PropertyCode = inst.Contract.Property.Code
			}
			if inst.Contract.Tenant.ID != 0 {
				row.TenantName = inst.Contract.Tenant.Name
			}
		}
		if inst.PaidAt != nil {
			row.PaidAt = inst.PaidAt.Format(models.DateLayout)
		}

		rows = append(rows, row)
	}

	return rows, installments, nil
}

// InstallmentsReport returns the installments report as structured data.
func (s *ReportService) InstallmentsReport(ctx context.Context, query *repository.ListQuery) (*InstallmentReport, error) {
	rows, installments, err := s.installmentRows(ctx, query)
	if err != nil {
		return nil, err
	}

	return &InstallmentReport{
		Rows:   rows,
		Totals: models.ProjectLedger(installments, time.Now()),
	}, nil
}

// GenerateInstallmentsCSV builds a CSV report of installments matching the
// query, followed by the ledger totals of the matched set.
func (s *ReportService) GenerateInstallmentsCSV(ctx context.Context, query *repository.ListQuery) (*bytes.Buffer, string, error) {
	rows, installments, err := s.installmentRows(ctx, query)
	if err != nil {
		return nil, "", err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"ID", "Contract", "Property", "Tenant", "Due Date", "Amount", "Status", "Paid At"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.ID),
			row.ContractNo,
			row.PropertyCode,
			row.TenantName,
			row.DueDate,
			fmt.Sprintf("%.2f", row.Amount),
			row.Status,
			row.PaidAt,
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}

	view := models.ProjectLedger(installments, time.Now())
	_ = w.Write([]string{""})
	_ = w.Write([]string{"Total", fmt.Sprintf("%.2f", view.Total)})
	_ = w.Write([]string{"Paid", fmt.Sprintf("%.2f", view.PaidTotal)})
	_ = w.Write([]string{"Remaining", fmt.Sprintf("%.2f", view.Remaining)})
	_ = w.Write([]string{"Late", fmt.Sprintf("%.2f", view.LateTotal)})

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("installments_%s.csv", time.Now().Format("2006-01-02"))
	return b, filename, nil
}

// GenerateInstallmentsXLSX builds an XLSX workbook with the matched
// installments and a summary block.
func (s *ReportService) GenerateInstallmentsXLSX(ctx context.Context, query *repository.ListQuery) ([]byte, string, error) {
	rows, installments, err := s.installmentRows(ctx, query)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Installments"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	headers := []string{"ID", "Contract", "Property", "Tenant", "Due Date", "Amount", "Status", "Paid At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for r, row := range rows {
		values := []interface{}{row.ID, row.ContractNo, row.PropertyCode, row.TenantName, row.DueDate, row.Amount, row.Status, row.PaidAt}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	view := models.ProjectLedger(installments, time.Now())
	base := len(rows) + 3
	summary := [][2]interface{}{
		{"Total", view.Total},
		{"Paid", view.PaidTotal},
		{"Remaining", view.Remaining},
		{"Late", view.LateTotal},
		{"Late count", view.LateCount},
	}
	for i, pair := range summary {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", base+i), pair[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", base+i), pair[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("installments_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// GenerateContractStatementPDF builds a PDF statement for one contract: the
// parties, the full installment schedule and the ledger totals.
func (s *ReportService) GenerateContractStatementPDF(ctx context.Context, contractID uint) ([]byte, string, error) {
	contract, err := s.contractRepo.FindByIDWithDetails(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}

	propertyCode := "-"
	if contract.Property.ID != 0 {
		propertyCode = contract.Property.Code
	}
	tenantName := "-"
	if contract.Tenant.ID != 0 {
		tenantName = contract.Tenant.Name
	}

	now := time.Now()
	view := models.ProjectLedger(contract.Installments, now)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Contract Statement")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Contract:")
	pdf.Cell(60, 8, contract.ContractNo)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Property:")
	pdf.Cell(60, 8, propertyCode)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Tenant:")
	pdf.Cell(60, 8, tenantName)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Period:")
	pdf.Cell(60, 8, fmt.Sprintf("%s to %s", contract.StartDate.Format(models.DateLayout), contract.EndDate.Format(models.DateLayout)))
	pdf.Ln(6)
	pdf.Cell(60, 8, "Rent / frequency:")
	pdf.Cell(60, 8, fmt.Sprintf("%.2f %s", contract.RentAmount, contract.PayFrequency))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Installments")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(40, 7, "Due Date")
	pdf.Cell(40, 7, "Amount")
	pdf.Cell(30, 7, "Status")
	pdf.Cell(40, 7, "Paid At")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 10)
	for i := range contract.Installments {
		inst := &contract.Installments[i]
		paidAt := "-"
		if inst.PaidAt != nil {
			paidAt = inst.PaidAt.Format(models.DateLayout)
		}
		pdf.Cell(40, 6, inst.DueDate.Format(models.DateLayout))
		pdf.Cell(40, 6, fmt.Sprintf("%.2f", inst.Amount))
		pdf.Cell(30, 6, inst.DisplayStatus(now))
		pdf.Cell(40, 6, paidAt)
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, "Total:")
	pdf.Cell(40, 6, fmt.Sprintf("%.2f", view.Total))
	pdf.Ln(6)
	pdf.Cell(60, 6, "Paid:")
	pdf.Cell(40, 6, fmt.Sprintf("%.2f", view.PaidTotal))
	pdf.Ln(6)
	pdf.Cell(60, 6, "Remaining:")
	pdf.Cell(40, 6, fmt.Sprintf("%.2f", view.Remaining))
	pdf.Ln(6)
	pdf.Cell(60, 6, "Late:")
	pdf.Cell(40, 6, fmt.Sprintf("%.2f (%d installments)", view.LateTotal, view.LateCount))
	pdf.Ln(6)
	if view.NextDueDate != "" {
		pdf.Cell(60, 6, "Next due:")
		pdf.Cell(40, 6, fmt.Sprintf("%s (%.2f)", view.NextDueDate, view.NextDueAmount))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("statement_%s.pdf", contract.ContractNo)
	return buf.Bytes(), filename, nil
}

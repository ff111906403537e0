package export

import (
	"fmt"

	"github.com/gartstein/crewstart/internal/crew/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	crewListSheet = "Crew List"
	minColWidth   = 15
)

// crewListHeaders is the fixed column order of the spreadsheet export.
var crewListHeaders = []string{
	"First Name",
	"Last Name",
	"Position",
	"Department",
	"Start Date",
	"End Date",
	"Phone",
	"Mobile",
	"Rate",
	"Daily Rate",
	"Day Worked",
	"Per Week",
	"Holiday Worked",
	"Travel Day",
	"Allowance",
	"Per Diem",
	"Accommodation",
	"ID Card",
	"Date of Birth",
	"Patent",
	"Address",
	"ICE",
	"IF Number",
	"Payment",
	"Bank Name",
	"Account #",
	"Acct Code",
	"Travel Date",
	"Notes",
}

// CrewListXLSX serializes the selected crew members into a single-sheet
// workbook, one data row per selected member in the members' given order.
// An empty selection is a no-op: (nil, nil), no file.
func CrewListXLSX(members []*models.CrewMember, selected map[uuid.UUID]bool) ([]byte, error) {
	if len(selected) == 0 {
		return nil, nil
	}

	var rows [][]interface{}
	for _, m := range members {
		if !selected[m.ID] {
			continue
		}
		rows = append(rows, crewListRow(m))
	}
	if len(rows) == 0 {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", crewListSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := make([]interface{}, len(crewListHeaders))
	for i, h := range crewListHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(crewListSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(crewListSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	// Width hint per column, derived from the header length.
	for i, h := range crewListHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		width := float64(len(h))
		if width < minColWidth {
			width = minColWidth
		}
		if err := f.SetColWidth(crewListSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func crewListRow(m *models.CrewMember) []interface{} {
	return []interface{}{
		m.FirstName,
		m.LastName,
		m.Position,
		m.Department,
		m.StartDate,
		m.EndDate,
		m.Phone,
		m.Mobile,
		numericCell(m.Rate),
		numericCell(m.DailyRate),
		numericCell(m.DayWorked),
		string(m.PerWeek),
		m.HolidayWorked,
		m.TravelDay,
		m.LivingAllowance,
		m.PerDiem,
		m.Accommodation,
		m.IDCardNumber,
		m.DateOfBirth,
		m.PatentNumber,
		m.Address,
		m.ICE,
		m.IFNumber,
		m.PaymentMethod,
		m.BankName,
		m.BankAccountNumber,
		m.AccountCode,
		m.TravelDate,
		m.Notes,
	}
}

// numericCell keeps unset monetary values as empty cells instead of zeros.
func numericCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

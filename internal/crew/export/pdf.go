// Package export holds the two document exporters: the single-page start-form
// PDF and the crew-list spreadsheet. Both are stateless transformations with
// no persistence side effects; callers decide where the bytes go.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gartstein/crewstart/internal/crew/transform"
	"github.com/go-pdf/fpdf"
)

// Fixed start-form geometry, in millimeters on an A4 portrait page.
const (
	pageCenterX = 105.0
	leftColX    = 20.0
	rightColX   = 115.0
	rowHeight   = 10.0
)

type fieldRow struct {
	label string
	value string
}

// StartFormPDF renders a crew member's starter form as a single A4 page:
// centered company header, two fixed columns of label/value rows with
// underline rules, and a signature block footer. Values render verbatim,
// empty ones included; a row is only dropped when its label is undefined,
// which keeps the two columns vertically aligned.
func StartFormPDF(form *transform.FormState, companyName string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	y := 22.0

	title := strings.ToUpper(companyName)
	if title == "" {
		title = "COMPANY NAME"
	}
	pdf.SetFont("Helvetica", "B", 18)
	textCentered(pdf, title, y)

	y += 9
	pdf.SetFontSize(12)
	textCentered(pdf, "MOROCCAN CREW START FORM", y)

	y += 4
	pdf.SetDrawColor(160, 160, 160)
	pdf.SetLineWidth(0.4)
	pdf.Line(75, y, 135, y)

	y += 14
	pdf.SetDrawColor(120, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(15, y, 195, y)

	y += 10

	leftFields := leftRows(form)
	rightFields := rightRows(form)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)

	maxRows := len(leftFields)
	if len(rightFields) > maxRows {
		maxRows = len(rightFields)
	}

	for i := 0; i < maxRows; i++ {
		yPos := y + float64(i)*rowHeight

		if i < len(leftFields) {
			pdf.SetFont("Helvetica", "B", 10.5)
			pdf.Text(leftColX, yPos, leftFields[i].label)

			pdf.SetFont("Helvetica", "", 12)
			pdf.Text(leftColX+42, yPos, leftFields[i].value)
			pdf.Line(leftColX+40, yPos+1.5, 95, yPos+1.5)
		}

		if i < len(rightFields) {
			pdf.SetFont("Helvetica", "B", 10.5)
			pdf.Text(rightColX, yPos, rightFields[i].label)

			pdf.SetFont("Helvetica", "", 12)
			pdf.Text(rightColX+45, yPos, rightFields[i].value)
			pdf.Line(rightColX+42, yPos+1.5, 195, yPos+1.5)
		}
	}

	y += float64(maxRows)*rowHeight + 8

	// Signature block.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Line(15, y, 195, y)

	y += 10
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(leftColX, y, "EMPLOYEE SIGNATURE :")
	y += 3
	pdf.Rect(leftColX, y, 80, 30, "D")

	sigX := 105.0
	sy := y
	sigLines := []string{
		"APPROVAL : ..........................................................",
		"MOR LINE PRODUCER : .........................................",
		"UPM MOROCCO : .......................................................",
		"ACCOUNTS : ..........................................................",
		"HOD : ...............................................................",
	}
	for _, label := range sigLines {
		pdf.Text(sigX, sy+5, label)
		sy += 12
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render start form: %w", err)
	}
	return buf.Bytes(), nil
}

// leftRows builds the left column of the start form in display order.
func leftRows(form *transform.FormState) []fieldRow {
	return definedRows([]fieldRow{
		{"FIRST NAME :", form.FirstName},
		{"ID CARD NO :", form.IDCard},
		{"ADDRESS :", form.Address},
		{"TELEPHONE # :", form.Phone},
		{"POSITION :", form.Position},
		{"START DATE :", form.StartDate},
		{"RATE :", form.Rate},
		{"7th DAY WORKED :", form.DayWorked},
		{"TRAVEL DAY :", form.TravelDay},
		{"LIVING ALLOWANCE :", form.Allowance},
		{"ACCOMMODATION :", form.Accommodation},
		{"BANK NAME :", form.BankName},
		{"ACCT CODE :", form.AcctCode},
		{"ICE :", form.ICE},
		{"BANK ACCOUNT# :", form.BankAccount},
	})
}

// rightRows builds the right column of the start form in display order.
func rightRows(form *transform.FormState) []fieldRow {
	return definedRows([]fieldRow{
		{"NAME :", form.LastName},
		{"DATE OF BIRTH :", form.Birth},
		{"PATENT :", form.Patent},
		{"MOBILE # :", form.Mobile},
		{"DEPARTMENT :", form.Department},
		{"END DATE :", form.EndDate},
		{"PER DAY/WEEK :", form.PerWeek},
		{"HOLIDAY WORKED :", form.HolidayWorked},
		{"DAILY RATE :", form.DailyRate},
		{"PER DIEM :", form.PerDiem},
		{"PAYMENT METHOD :", form.Payment},
		{"TRAVEL DATE :", form.TravelDate},
		{"IF :", form.IFNumber},
		{"NOTE :", form.Note},
	})
}

// definedRows drops rows whose label is blank. Values stay, even when empty.
func definedRows(rows []fieldRow) []fieldRow {
	out := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(row.label) != "" {
			out = append(out, row)
		}
	}
	return out
}

func textCentered(pdf *fpdf.Fpdf, s string, y float64) {
	pdf.Text(pageCenterX-pdf.GetStringWidth(s)/2, y, s)
}

// StarterFilename names the PDF generated from the crew list view.
func StarterFilename(firstName, lastName string) string {
	return fmt.Sprintf("Starter_%s_%s.pdf", firstName, lastName)
}

// StartFormFilename names the PDF generated from the starter form itself.
func StartFormFilename(companyName, projectTitle string) string {
	if companyName == "" {
		companyName = "Company"
	}
	return fmt.Sprintf("StartForm_%s_%s.pdf", companyName, projectTitle)
}

// CrewListFilename names the spreadsheet export.
func CrewListFilename(companyName string, day time.Time) string {
	if companyName == "" {
		companyName = "Export"
	}
	return fmt.Sprintf("Crew_List_%s_%s.xlsx", companyName, day.Format("2006-01-02"))
}

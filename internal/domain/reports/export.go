package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"paystructure/internal/domain/salary"
)

const (
	dateLayout = "2006-01-02"
	sheetName  = "Structure"
)

var workbookHeader = []string{"Code", "Name", "Type", "Calculation", "Value", "Base", "Monthly Amount", "Resolved"}

// StructurePDF renders a one-page breakdown of a structure and its resolved
// amounts.
func StructurePDF(w io.Writer, structure salary.Structure, result salary.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Salary Structure")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s", structure.Name))
	pdf.Ln(7)
	if structure.IsTemplate() {
		pdf.Cell(0, 8, "Template")
	} else {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", structure.EmployeeID))
	}
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Effective from: %s", formatDate(structure)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(30, 8, "Code", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 8, "Component", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Monthly", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range result.Lines {
		amount := line.Amount.StringFixed(2)
		if !line.Resolved {
			amount += " *"
		}
		pdf.CellFormat(30, 8, line.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 8, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, string(line.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, amount, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", result.Gross.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %s", result.Deductions.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %s", result.Net.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("CTC: %s (annual %s)", result.CTC.StringFixed(2), result.AnnualCTC.StringFixed(2)))
	if len(result.Unresolved) > 0 {
		pdf.Ln(10)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "* contributed zero: "+strings.Join(result.Unresolved, ", "), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render structure pdf: %w", err)
	}
	return pdf.Output(w)
}

// StructureWorkbook writes the same breakdown as an XLSX sheet, one row per
// component followed by the totals.
func StructureWorkbook(w io.Writer, structure salary.Structure, result salary.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	set := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, cell, value)
	}

	for i, title := range workbookHeader {
		if err := set(i+1, 1, title); err != nil {
			return err
		}
	}

	// result.Lines follows the order of structure.Components; codes may repeat.
	row := 2
	for i, comp := range structure.Components {
		var line salary.Line
		if i < len(result.Lines) {
			line = result.Lines[i]
		}
		values := []any{
			comp.Code,
			comp.Name,
			string(comp.Type),
			string(comp.CalculationType),
			comp.Value.InexactFloat64(),
			comp.BaseComponent,
			line.Amount.InexactFloat64(),
			line.Resolved,
		}
		for col, value := range values {
			if err := set(col+1, row, value); err != nil {
				return err
			}
		}
		row++
	}

	row++
	totals := []struct {
		label string
		value float64
	}{
		{"Gross", result.Gross.InexactFloat64()},
		{"Deductions", result.Deductions.InexactFloat64()},
		{"Net", result.Net.InexactFloat64()},
		{"CTC", result.CTC.InexactFloat64()},
		{"Annual CTC", result.AnnualCTC.InexactFloat64()},
	}
	for _, total := range totals {
		if err := set(6, row, total.label); err != nil {
			return err
		}
		if err := set(7, row, total.value); err != nil {
			return err
		}
		row++
	}

	return f.Write(w)
}

func formatDate(structure salary.Structure) string {
	if structure.EffectiveFrom.IsZero() {
		return "-"
	}
	return structure.EffectiveFrom.Format(dateLayout)
}

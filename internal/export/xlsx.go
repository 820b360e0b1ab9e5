// Package export renders batch results as spreadsheets.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-parser/internal/batch"
)

const (
	SheetResumes    = "Resumes"
	SheetEmployment = "Employment"
)

var resumeHeaders = []string{
	"File",
	"Name",
	"Email",
	"Mobile",
	"Skills",
	"University",
	"Degree",
	"Designation",
	"Companies",
	"Pages",
	"Total Experience",
	"Error",
}

var employmentHeaders = []string{
	"File",
	"Index",
	"Company",
	"Position",
	"Start",
	"End",
}

// XLSX returns a workbook with one row per file on the Resumes sheet and
// one row per predicted position on the Employment sheet.
func XLSX(results *batch.Results) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// the default sheet is renamed so the workbook has no empty first tab
	if err := f.SetSheetName("Sheet1", SheetResumes); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetEmployment); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := writeRow(f, SheetResumes, 1, toAny(resumeHeaders)); err != nil {
		return nil, err
	}
	if err := writeRow(f, SheetEmployment, 1, toAny(employmentHeaders)); err != nil {
		return nil, err
	}

	row, empRow := 2, 2
	if results != nil {
		for _, item := range results.Items {
			if item.Failed() {
				if err := writeRow(f, SheetResumes, row, []any{item.Path, "", "", "", "", "", "", "", "", "", "", item.Error}); err != nil {
					return nil, err
				}
				row++
				continue
			}

			rec := item.Record
			values := []any{
				item.Path,
				rec.Name.OrElse(""),
				rec.Email.OrElse(""),
				rec.Mobile.OrElse(""),
				join(rec.SkillList()),
				join(rec.University.OrElse(nil)),
				join(rec.Degree.OrElse(nil)),
				join(rec.Designation.OrElse(nil)),
				join(rec.CompanyNames.OrElse(nil)),
				rec.Pages.OrElse(0),
				rec.TotalExperience.OrElse(0),
				"",
			}
			if err := writeRow(f, SheetResumes, row, values); err != nil {
				return nil, err
			}
			row++

			for _, e := range rec.Profile.Employment {
				values := []any{
					item.Path,
					e.Index,
					join(e.Company),
					join(e.Position),
					join(e.PeriodStart),
					join(e.PeriodEnd),
				}
				if err := writeRow(f, SheetEmployment, empRow, values); err != nil {
					return nil, err
				}
				empRow++
			}
		}
	}

	_ = f.SetColWidth(SheetResumes, "A", "A", 40)
	_ = f.SetColWidth(SheetResumes, "B", "D", 24)
	_ = f.SetColWidth(SheetResumes, "E", "I", 36)
	_ = f.SetColWidth(SheetResumes, "L", "L", 48)
	_ = f.SetColWidth(SheetEmployment, "A", "A", 40)
	_ = f.SetColWidth(SheetEmployment, "C", "F", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func join(values []string) string {
	return strings.Join(values, "; ")
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

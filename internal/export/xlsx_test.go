package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/resume-parser/internal/batch"
	"github.com/spigell/resume-parser/internal/resume"
)

func TestXLSX(t *testing.T) {
	rec := resume.NewBuilder().
		Name(resume.Present("Jane Doe")).
		Email(resume.Present("jane@example.com")).
		Skills(resume.Present([]string{"Python", "Go"})).
		Pages(resume.Present(2)).
		Profile(resume.Profile{Employment: []resume.Employment{
			{Index: 0, Company: []string{"Acme"}, Position: []string{"Engineer"}},
		}}).
		Build()

	results := &batch.Results{Items: []*batch.Result{
		{Path: "jane.pdf", Record: &rec},
		{Path: "broken.pdf", Err: errors.New("malformed pdf"), Error: "malformed pdf"},
	}}

	data, err := XLSX(results)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetResumes)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "File" || rows[0][11] != "Error" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "Jane Doe" || rows[1][4] != "Python; Go" || rows[1][9] != "2" {
		t.Fatalf("unexpected record row: %v", rows[1])
	}
	if rows[2][0] != "broken.pdf" || rows[2][len(rows[2])-1] != "malformed pdf" {
		t.Fatalf("unexpected failure row: %v", rows[2])
	}

	employment, err := f.GetRows(SheetEmployment)
	if err != nil {
		t.Fatalf("read employment rows: %v", err)
	}
	if len(employment) != 2 || employment[1][2] != "Acme" || employment[1][3] != "Engineer" {
		t.Fatalf("unexpected employment rows: %v", employment)
	}
}

func TestXLSXEmpty(t *testing.T) {
	data, err := XLSX(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != SheetResumes {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
}

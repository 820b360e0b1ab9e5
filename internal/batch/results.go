package batch

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spigell/resume-parser/internal/resume"
)

// Result is the outcome for one file.
type Result struct {
	Path   string         `json:"file"`
	Record *resume.Record `json:"record,omitempty"`
	Error  string         `json:"error,omitempty"`
	Err    error          `json:"-"`
}

func (r *Result) Failed() bool { return r.Err != nil || r.Record == nil }

// Results holds batch outcomes in input order.
type Results struct {
	Items []*Result `json:"results"`
}

func (r *Results) Len() int {
	return len(r.Items)
}

func (r *Results) Failed() []*Result {
	var failed []*Result
	for _, item := range r.Items {
		if item.Failed() {
			failed = append(failed, item)
		}
	}
	return failed
}

// Records returns the records of the successful results.
func (r *Results) Records() []resume.Record {
	records := make([]resume.Record, 0, len(r.Items))
	for _, item := range r.Items {
		if !item.Failed() {
			records = append(records, *item.Record)
		}
	}
	return records
}

func (r *Results) FindByPath(path string) *Result {
	for _, item := range r.Items {
		if item.Path == path {
			return item
		}
	}
	return nil
}

// DumpToTmpFile writes the results as indented JSON to a new temporary file
// and returns its name.
func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "resumes_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups candidates by the companies the domain model found
// in their resumes. Candidates without companies are listed under "unknown".
func (r *Results) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, item := range r.Items {
		if item.Failed() {
			continue
		}

		rec := item.Record
		entry := map[string]string{
			"file":        item.Path,
			"name":        rec.Name.OrElse(""),
			"email":       rec.Email.OrElse(""),
			"designation": strings.Join(rec.Designation.OrElse(nil), ", "),
		}

		companies := rec.CompanyNames.OrElse(nil)
		if len(companies) == 0 {
			companies = rec.Profile.Companies()
		}
		if len(companies) == 0 {
			report["unknown"] = append(report["unknown"], entry)
			continue
		}

		seen := make(map[string]struct{}, len(companies))
		for _, company := range companies {
			key := strings.TrimSpace(company)
			if _, dup := seen[strings.ToLower(key)]; dup || key == "" {
				continue
			}
			seen[strings.ToLower(key)] = struct{}{}
			report[key] = append(report[key], entry)
		}
	}
	return report
}

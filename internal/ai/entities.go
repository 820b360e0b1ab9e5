// Package ai holds the contract of the fine-tuned domain entity model.
package ai

import (
	"context"
	"sort"
	"strings"
)

// Entity labels produced by the domain model.
const (
	LabelName           = "Name"
	LabelDegree         = "Degree"
	LabelDesignation    = "Designation"
	LabelCompanies      = "Companies worked at"
	LabelGraduationDate = "GraduationDate"
	LabelSummary        = "Summary"
	LabelUniversity     = "University"
)

// Entities maps an entity label to the text spans predicted for it, in
// document order.
type Entities map[string][]string

// EntityModel predicts labelled spans over raw resume text.
type EntityModel interface {
	Predict(ctx context.Context, raw string) (Entities, error)
	Name() string
}

// First returns the first non-empty span predicted for label. Whitespace-only
// spans carry no text and are skipped.
func (e Entities) First(label string) (string, bool) {
	for _, v := range e[label] {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

// Values returns the non-empty spans for label, nil when none.
func (e Entities) Values(label string) []string {
	var out []string
	for _, v := range e[label] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Labels returns the labels that carry at least one span, sorted.
func (e Entities) Labels() []string {
	labels := make([]string, 0, len(e))
	for label := range e {
		if len(e.Values(label)) > 0 {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

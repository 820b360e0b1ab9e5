// Package extraction holds the field extractors and the step pipeline that
// runs them over one resume.
package extraction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spigell/resume-parser/internal/resume"
)

var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

// DefaultMobilePattern accepts an optional country code, an area code with
// or without parentheses, common separators and an optional extension.
const DefaultMobilePattern = `(?:(?:\+?([1-9]|[0-9][0-9]|[0-9][0-9][0-9])\s*(?:[.-]\s*)?)?(?:\(\s*([2-9]1[02-9]|[2-9][02-8]1|[2-9][02-8][02-9])\s*\)|([0-9][1-9]|[0-9]1[02-9]|[2-9][02-8]1|[2-9][02-8][02-9]))\s*(?:[.-]\s*)?)?([2-9]1[02-9]|[2-9][02-9]1|[2-9][02-9]{2})\s*(?:[.-]\s*)?([0-9]{4})(?:\s*(?:#|x\.?|ext\.?|extension)\s*(\d+))?`

// ExtractEmail returns the first email address in text verbatim.
func ExtractEmail(text string) resume.Field[string] {
	match := emailPattern.FindString(text)
	if match == "" {
		return resume.Absent[string]()
	}
	return resume.Present(match)
}

// MobileExtractor finds phone numbers with a compiled pattern.
type MobileExtractor struct {
	pattern *regexp.Regexp
	custom  bool
}

// NewMobileExtractor compiles custom when set, the default pattern otherwise.
func NewMobileExtractor(custom string) (*MobileExtractor, error) {
	custom = strings.TrimSpace(custom)
	if custom == "" {
		return &MobileExtractor{pattern: regexp.MustCompile(DefaultMobilePattern)}, nil
	}

	re, err := regexp.Compile(custom)
	if err != nil {
		return nil, fmt.Errorf("compile custom mobile regex: %w", err)
	}

	return &MobileExtractor{pattern: re, custom: true}, nil
}

// Extract returns the first match in text as written, without normalization.
func (m *MobileExtractor) Extract(text string) resume.Field[string] {
	match := strings.TrimSpace(m.pattern.FindString(text))
	if match == "" {
		return resume.Absent[string]()
	}
	return resume.Present(match)
}

func (m *MobileExtractor) Custom() bool { return m.custom }

func (m *MobileExtractor) String() string { return m.pattern.String() }

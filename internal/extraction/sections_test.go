package extraction

import (
	"testing"
	"time"
)

const sampleResume = `John Smith
john@example.com

PROFESSIONAL EXPERIENCE
Senior Engineer, Acme Corp
Jan 2019 - Jan 2020

Engineer, Globex
March 2020 to March 2021

EDUCATION
Stanford University
B.Sc Computer Science
Springfield College

Skills:
Go, Python

Work Experience
Intern, Initech
`

func TestSegment(t *testing.T) {
	sections := Segment(sampleResume)

	experience := sections.Lines(SectionExperience)
	wantExperience := []string{
		"Senior Engineer, Acme Corp",
		"Jan 2019 - Jan 2020",
		"Engineer, Globex",
		"March 2020 to March 2021",
		"Intern, Initech",
	}
	if len(experience) != len(wantExperience) {
		t.Fatalf("unexpected experience lines: %q", experience)
	}
	for i := range wantExperience {
		if experience[i] != wantExperience[i] {
			t.Fatalf("experience line %d: got %q, want %q", i, experience[i], wantExperience[i])
		}
	}

	education := sections.Lines(SectionEducation)
	if len(education) != 3 {
		t.Fatalf("unexpected education lines: %q", education)
	}

	universities := sections.Universities()
	if len(universities) != 1 || universities[0] != "Stanford University" {
		t.Fatalf("unexpected universities: %q", universities)
	}

	if skills := sections.Lines(SectionSkills); len(skills) != 1 || skills[0] != "Go, Python" {
		t.Fatalf("unexpected skills lines: %q", skills)
	}
}

func TestSegmentDatedTitleStaysInSection(t *testing.T) {
	sections := Segment("Experience\nEducation Consultant, Jan 2019 - Mar 2021\nAcme\n")

	experience := sections.Lines(SectionExperience)
	if len(experience) != 2 || experience[0] != "Education Consultant, Jan 2019 - Mar 2021" || experience[1] != "Acme" {
		t.Fatalf("unexpected experience lines: %q", experience)
	}
	if _, ok := sections[SectionEducation]; ok {
		t.Fatalf("dated line must not open an education section: %v", sections)
	}
}

func TestSegmentWithoutHeadings(t *testing.T) {
	sections := Segment("Just a line\nAnother line mentioning experience in a long sentence here")
	if len(sections) != 0 {
		t.Fatalf("expected no sections, got %v", sections)
	}
	if got := sections.Lines(SectionExperience); got == nil || len(got) != 0 {
		t.Fatalf("expected empty list, got %#v", got)
	}
	if got := sections.Universities(); got == nil || len(got) != 0 {
		t.Fatalf("expected empty universities, got %#v", got)
	}
}

func TestSectionHeading(t *testing.T) {
	cases := []struct {
		line string
		want string
		ok   bool
	}{
		{line: "EXPERIENCE", want: SectionExperience, ok: true},
		{line: "Work Experience:", want: SectionExperience, ok: true},
		{line: "Career Objective", want: SectionObjective, ok: true},
		{line: "Achievements & Awards", want: SectionAccomplishments, ok: true},
		{line: "Technical Skills", want: SectionSkills, ok: true},
		{line: "I have experience with many tools and languages", ok: false},
		{line: "2019 - 2020", ok: false},
		{line: "Education Consultant, Jan 2019 - Mar 2021", ok: false},
		{line: "Skills Trainer 03/2018 - present", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, ok := sectionHeading(tc.line)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("sectionHeading(%q) = %q, %v; want %q, %v", tc.line, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestTotalExperience(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		lines []string
		want  float64
	}{
		{
			name:  "two twelve month ranges",
			lines: []string{"Senior Engineer", "Jan 2019 - Jan 2020", "March 2020 to March 2021"},
			want:  2.0,
		},
		{
			name:  "single twenty four month range",
			lines: []string{"Acme Corp Feb 2015 – Feb 2017"},
			want:  2.0,
		},
		{
			name:  "open range",
			lines: []string{"Jun 2022 - Present"},
			want:  2.0,
		},
		{
			name:  "numeric range",
			lines: []string{"01/2020 - 07/2020"},
			want:  0.5,
		},
		{
			name:  "reversed range counts zero",
			lines: []string{"Jan 2021 - Jan 2020"},
			want:  0,
		},
		{
			name:  "no parseable lines",
			lines: []string{"Engineer at Acme", "Did many things"},
			want:  0,
		},
		{
			name: "no lines",
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := TotalExperience(tc.lines, now).Get()
			if !ok {
				t.Fatal("total experience must always be present")
			}
			if got != tc.want {
				t.Fatalf("TotalExperience() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestExperienceMonthsIgnoresUnknownMonths(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	lines := []string{
		"Version 2019 - Release 2020",
		"Marketing 2019 - Mar 2021",
		"Junior 2018 - Decent 2020",
		"Octane 2010 - Now",
		"Mayor 2015 to Augusta 2016",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			if got := ExperienceMonths([]string{line}, now); got != 0 {
				t.Fatalf("expected 0 months, got %d", got)
			}
		})
	}
}

func TestExperienceMonthsMonthSpellings(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		line string
		want int
	}{
		{line: "Sept 2019 - June 2020", want: 9},
		{line: "September 2019 – Jul. 2020", want: 10},
		{line: "Dec, 2020 to May 2021", want: 5},
		{line: "Nov 2023 - current", want: 2},
	}

	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			if got := ExperienceMonths([]string{tc.line}, now); got != tc.want {
				t.Fatalf("ExperienceMonths(%q) = %d, want %d", tc.line, got, tc.want)
			}
		})
	}
}

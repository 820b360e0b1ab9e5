package resume

import "fmt"

// Flat keys of the basic details.
const (
	KeyName            = "name"
	KeyEmail           = "email"
	KeyMobile          = "mobile_number"
	KeySkills          = "skills"
	KeyUniversity      = "university"
	KeyDegree          = "degree"
	KeyDesignation     = "designation"
	KeyExperience      = "experience"
	KeyCompanyNames    = "company_names"
	KeyPages           = "no_of_pages"
	KeyTotalExperience = "total_experience"
)

// Number of indexed groups written to the flat mapping.
const (
	EmploymentSlots  = 8
	SkillSlots       = 18
	AchievementSlots = 7
)

var employmentAttributes = []string{
	"company",
	"description",
	"position",
	"employment_period_start",
	"employment_period_end",
}

var achievementAttributes = []string{"name", "description"}

// Keys lists every key of the flat mapping. The list is fixed: Flatten
// always writes all of them.
func Keys() []string {
	keys := []string{
		KeyName, KeyEmail, KeyMobile, KeySkills, KeyUniversity, KeyDegree,
		KeyDesignation, KeyExperience, KeyCompanyNames, KeyPages, KeyTotalExperience,
	}
	keys = append(keys, profileListKeys...)
	for i := 0; i < EmploymentSlots; i++ {
		for _, attr := range employmentAttributes {
			keys = append(keys, employmentKey(i, attr))
		}
	}
	for i := 0; i < SkillSlots; i++ {
		keys = append(keys, skillKey(i))
	}
	for i := 0; i < AchievementSlots; i++ {
		for _, attr := range achievementAttributes {
			keys = append(keys, achievementKey(i, attr))
		}
	}
	return keys
}

func employmentKey(i int, attr string) string {
	return fmt.Sprintf("Employment_%d_%s", i, attr)
}

func skillKey(i int) string {
	return fmt.Sprintf("Skills_%d", i)
}

func achievementKey(i int, attr string) string {
	return fmt.Sprintf("Achievements_%d_%s", i, attr)
}

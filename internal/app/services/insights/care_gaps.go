package insights

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"healthbridge-service/internal/app/models"
)

// CareGapRule is one preventive-care guideline: who it applies to, where to
// look for the most recent qualifying record, and how often it is due.
// IntervalMonths of zero means once ever.
type CareGapRule struct {
	ID             string
	Name           string
	Description    string
	BasePriority   string
	IntervalMonths int
	Applies        func(p PatientFacts) bool
	LastDone       func(data models.MergeResult) *time.Time
}

const (
	GapPriorityHigh   = "high"
	GapPriorityMedium = "medium"
	GapPriorityLow    = "low"
)

// PatientFacts is the demographic and problem-list context a rule needs to
// decide applicability.
type PatientFacts struct {
	Age          int
	Gender       string
	Diabetic     bool
	Hypertensive bool
}

var CareGapRules = []CareGapRule{
	{
		ID: "colonoscopy-screening", Name: "Colorectal cancer screening",
		Description: "Colonoscopy every 10 years starting at age 45",
		BasePriority: GapPriorityHigh, IntervalMonths: 120,
		Applies:  func(p PatientFacts) bool { return p.Age >= 45 },
		LastDone: lastEncounterMatching(`(?i)colonoscopy|sigmoidoscopy`),
	},
	{
		ID: "mammogram-screening", Name: "Breast cancer screening",
		Description: "Mammogram every year starting at age 40",
		BasePriority: GapPriorityHigh, IntervalMonths: 12,
		Applies:  func(p PatientFacts) bool { return p.Age >= 40 && strings.EqualFold(p.Gender, "female") },
		LastDone: lastEncounterMatching(`(?i)mammogra`),
	},
	{
		ID: "shingles-vaccine", Name: "Shingles vaccination",
		Description: "Shingrix series recommended at age 50",
		BasePriority: GapPriorityMedium, IntervalMonths: 0,
		Applies:  func(p PatientFacts) bool { return p.Age >= 50 },
		LastDone: lastImmunizationMatching(`(?i)shingrix|zoster|shingles`),
	},
	{
		ID: "a1c-monitoring", Name: "Hemoglobin A1c monitoring",
		Description: "A1c every 3-6 months for diabetic patients",
		BasePriority: GapPriorityHigh, IntervalMonths: 6,
		Applies:  func(p PatientFacts) bool { return p.Diabetic },
		LastDone: lastLabMatching(`(?i)a1c|hemoglobin a1c|hba1c`),
	},
	{
		ID: "annual-bp-check", Name: "Annual blood pressure check",
		Description: "Blood pressure reading at least yearly",
		BasePriority: GapPriorityLow, IntervalMonths: 12,
		Applies:  func(p PatientFacts) bool { return true },
		LastDone: lastVitalOfType(models.VitalTypeBloodPressure),
	},
	{
		ID: "lipid-panel", Name: "Lipid panel",
		Description: "Cholesterol screening every 5 years from age 35",
		BasePriority: GapPriorityMedium, IntervalMonths: 60,
		Applies:  func(p PatientFacts) bool { return p.Age >= 35 },
		LastDone: lastLabMatching(`(?i)cholesterol|lipid|ldl|hdl|triglyceride`),
	},
	{
		ID: "flu-vaccine", Name: "Annual influenza vaccination",
		Description: "Flu vaccine every year",
		BasePriority: GapPriorityMedium, IntervalMonths: 12,
		Applies:  func(p PatientFacts) bool { return true },
		LastDone: lastImmunizationMatching(`(?i)influenza|flu`),
	},
	{
		ID: "covid-booster", Name: "Annual COVID-19 booster",
		Description: "Updated COVID-19 vaccine every year",
		BasePriority: GapPriorityLow, IntervalMonths: 12,
		Applies:  func(p PatientFacts) bool { return true },
		LastDone: lastImmunizationMatching(`(?i)covid|sars-cov`),
	},
	{
		ID: "bp-recheck-hypertension", Name: "Blood pressure recheck",
		Description: "Blood pressure every 3-6 months for hypertensive patients",
		BasePriority: GapPriorityMedium, IntervalMonths: 6,
		Applies:  func(p PatientFacts) bool { return p.Hypertensive },
		LastDone: lastVitalOfType(models.VitalTypeBloodPressure),
	},
}

var gapPriorityRank = map[string]int{
	GapPriorityHigh:   0,
	GapPriorityMedium: 1,
	GapPriorityLow:    2,
}

// EvaluateCareGaps runs every applicable rule against the merged data. Gaps
// that are not yet overdue report low priority; overdue gaps keep the rule's
// base priority with a floor of medium. Output lists overdue gaps first.
func EvaluateCareGaps(demographics models.Demographics, data models.MergeResult, now time.Time) []models.CareGap {
	facts := buildPatientFacts(demographics, data, now)

	var out []models.CareGap
	for _, rule := range CareGapRules {
		if !rule.Applies(facts) {
			continue
		}
		lastDone := rule.LastDone(data)

		var dueSince *time.Time
		overdue := lastDone == nil
		if lastDone != nil && rule.IntervalMonths > 0 {
			due := lastDone.AddDate(0, rule.IntervalMonths, 0)
			dueSince = &due
			overdue = due.Before(now)
		}

		priority := GapPriorityLow
		if overdue {
			priority = rule.BasePriority
			if gapPriorityRank[priority] > gapPriorityRank[GapPriorityMedium] {
				priority = GapPriorityMedium
			}
		}

		out = append(out, models.CareGap{
			RuleID:      rule.ID,
			Name:        rule.Name,
			Priority:    priority,
			Overdue:     overdue,
			LastDone:    lastDone,
			DueSince:    dueSince,
			Description: rule.Description,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Overdue != out[j].Overdue {
			return out[i].Overdue
		}
		return gapPriorityRank[out[i].Priority] < gapPriorityRank[out[j].Priority]
	})
	return out
}

func buildPatientFacts(demographics models.Demographics, data models.MergeResult, now time.Time) PatientFacts {
	facts := PatientFacts{Gender: demographics.Gender, Age: ageYears(demographics.BirthDate, now)}
	diabetes := regexp.MustCompile(`(?i)diabetes`)
	hypertension := regexp.MustCompile(`(?i)hypertension|high blood pressure`)
	for _, c := range data.Conditions {
		if !c.IsActive() {
			continue
		}
		if diabetes.MatchString(c.Name) {
			facts.Diabetic = true
		}
		if hypertension.MatchString(c.Name) {
			facts.Hypertensive = true
		}
	}
	return facts
}

func ageYears(birthDate string, now time.Time) int {
	born, err := time.Parse("2006-01-02", strings.TrimSpace(birthDate))
	if err != nil {
		return 0
	}
	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	return years
}

func lastEncounterMatching(pattern string) func(models.MergeResult) *time.Time {
	matcher := regexp.MustCompile(pattern)
	return func(data models.MergeResult) *time.Time {
		var latest *time.Time
		for _, e := range data.Encounters {
			if e.StartTime == nil {
				continue
			}
			if !matcher.MatchString(e.Type) && !matcher.MatchString(e.Reason) {
				continue
			}
			latest = laterOf(latest, e.StartTime)
		}
		return latest
	}
}

func lastLabMatching(pattern string) func(models.MergeResult) *time.Time {
	matcher := regexp.MustCompile(pattern)
	return func(data models.MergeResult) *time.Time {
		var latest *time.Time
		for _, lab := range data.LabResults {
			if lab.EffectiveDate == nil || !matcher.MatchString(lab.TestName) {
				continue
			}
			latest = laterOf(latest, lab.EffectiveDate)
		}
		return latest
	}
}

func lastImmunizationMatching(pattern string) func(models.MergeResult) *time.Time {
	matcher := regexp.MustCompile(pattern)
	return func(data models.MergeResult) *time.Time {
		var latest *time.Time
		for _, imm := range data.Immunizations {
			if imm.OccurrenceDate == nil || !matcher.MatchString(imm.VaccineName) {
				continue
			}
			latest = laterOf(latest, imm.OccurrenceDate)
		}
		return latest
	}
}

func lastVitalOfType(vitalType string) func(models.MergeResult) *time.Time {
	return func(data models.MergeResult) *time.Time {
		var latest *time.Time
		for _, v := range data.Vitals {
			if v.EffectiveDate == nil || v.Type != vitalType {
				continue
			}
			latest = laterOf(latest, v.EffectiveDate)
		}
		return latest
	}
}

func laterOf(current, candidate *time.Time) *time.Time {
	if current == nil || candidate.After(*current) {
		return candidate
	}
	return current
}

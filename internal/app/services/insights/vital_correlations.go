package insights

import (
	"fmt"
	"regexp"
	"sort"

	"healthbridge-service/internal/app/models"
)

// VitalMedRule links one vital type to a medication-name pattern and the kind
// of relationship the pairing represents.
type VitalMedRule struct {
	ID           string
	VitalType    string
	MedPattern   *regexp.Regexp
	Kind         string
	Significance string
	Template     string
}

const (
	CorrelationEffectiveness = "effectiveness"
	CorrelationSideEffect    = "side-effect"
	CorrelationExpected      = "expected-effect"
	CorrelationRiskFactor    = "risk-factor"
)

var VitalMedRules = []VitalMedRule{
	{
		ID: "bp-antihypertensive", VitalType: models.VitalTypeBloodPressure,
		MedPattern:   re(`lisinopril|enalapril|losartan|valsartan|amlodipine|metoprolol|hydrochlorothiazide|chlorthalidone`),
		Kind:         CorrelationEffectiveness,
		Significance: "medium",
		Template:     "Latest blood pressure reading reflects treatment with %s; compare against target to judge effectiveness",
	},
	{
		ID: "weight-gain-meds", VitalType: models.VitalTypeWeight,
		MedPattern:   re(`prednisone|prednisolone|insulin|amitriptyline|mirtazapine|olanzapine|quetiapine`),
		Kind:         CorrelationSideEffect,
		Significance: "medium",
		Template:     "Weight should be watched while taking %s, which commonly causes weight gain",
	},
	{
		ID: "hr-betablocker", VitalType: models.VitalTypeHeartRate,
		MedPattern:   re(`metoprolol|atenolol|carvedilol|propranolol|bisoprolol`),
		Kind:         CorrelationExpected,
		Significance: "low",
		Template:     "A lower heart rate is the expected pharmacologic effect of %s",
	},
}

var correlationSignificanceRank = map[string]int{
	"high":   0,
	"medium": 1,
	"low":    2,
}

// CorrelateVitals applies the vital/medication rule table using only the
// single most-recent reading per vital type, and separately flags the
// combined BMI risk factor. Duplicate (rule, vital, medication) hits collapse
// to one. Output is sorted by significance.
func CorrelateVitals(vitals []models.Vital, meds []models.Medication, conditions []models.Condition) []models.VitalCorrelation {
	latest := latestPerType(vitals)

	seen := map[string]bool{}
	var out []models.VitalCorrelation
	for _, rule := range VitalMedRules {
		vital, ok := latest[rule.VitalType]
		if !ok {
			continue
		}
		for _, med := range meds {
			if !med.IsActive() || !rule.MedPattern.MatchString(med.Name) {
				continue
			}
			key := rule.ID + "|" + vital.ID + "|" + med.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, models.VitalCorrelation{
				RuleID:       rule.ID,
				VitalID:      vital.ID,
				VitalType:    vital.Type,
				MedicationID: med.ID,
				Medication:   med.Name,
				Kind:         rule.Kind,
				Significance: rule.Significance,
				Message:      fmt.Sprintf(rule.Template, med.Name),
			})
		}
	}

	if risk := bmiRiskFactor(latest, conditions); risk != nil {
		out = append(out, *risk)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return correlationSignificanceRank[out[i].Significance] < correlationSignificanceRank[out[j].Significance]
	})
	return out
}

// bmiRiskFactor flags BMI >= 25 combined with active diabetes, or BMI >= 30
// alone, as a high-significance combined risk factor.
func bmiRiskFactor(latest map[string]models.Vital, conditions []models.Condition) *models.VitalCorrelation {
	bmi, ok := latest[models.VitalTypeBMI]
	if !ok || bmi.Value == nil {
		return nil
	}

	diabetic := false
	diabetes := regexp.MustCompile(`(?i)diabetes`)
	for _, c := range conditions {
		if c.IsActive() && diabetes.MatchString(c.Name) {
			diabetic = true
			break
		}
	}

	value := *bmi.Value
	var message string
	switch {
	case value >= 25 && diabetic:
		message = fmt.Sprintf("BMI of %.1f combined with active diabetes is a compounding metabolic risk", value)
	case value >= 30:
		message = fmt.Sprintf("BMI of %.1f is in the obese range and is an independent risk factor", value)
	default:
		return nil
	}

	return &models.VitalCorrelation{
		RuleID:       "bmi-combined-risk",
		VitalID:      bmi.ID,
		VitalType:    bmi.Type,
		Kind:         CorrelationRiskFactor,
		Significance: "high",
		Message:      message,
	}
}

func latestPerType(vitals []models.Vital) map[string]models.Vital {
	latest := map[string]models.Vital{}
	for _, v := range vitals {
		if v.EffectiveDate == nil {
			continue
		}
		current, ok := latest[v.Type]
		if !ok || v.EffectiveDate.After(*current.EffectiveDate) {
			latest[v.Type] = v
		}
	}
	return latest
}

package insights

import (
	"fmt"
	"strings"

	"healthbridge-service/internal/app/models"
)

// DefaultCriticalFactor is the multiplicative distance beyond a reference
// bound at which an abnormal value becomes critical: value >= high*factor is
// critical-high, value <= low/factor is critical-low.
const DefaultCriticalFactor = 1.5

// standardRanges holds typical adult reference intervals keyed by normalized
// test name, used only when the reporting lab did not attach its own range.
type standardRange struct {
	Low  float64
	High float64
	Unit string
}

var standardRanges = map[string]standardRange{
	"hemoglobin":           {12.0, 17.5, "g/dL"},
	"hematocrit":           {36.0, 51.0, "%"},
	"wbc":                  {4.5, 11.0, "10^3/uL"},
	"white blood cell":     {4.5, 11.0, "10^3/uL"},
	"platelets":            {150, 450, "10^3/uL"},
	"platelet count":       {150, 450, "10^3/uL"},
	"sodium":               {135, 145, "mmol/L"},
	"potassium":            {3.5, 5.1, "mmol/L"},
	"chloride":             {98, 107, "mmol/L"},
	"co2":                  {22, 29, "mmol/L"},
	"bun":                  {7, 20, "mg/dL"},
	"creatinine":           {0.6, 1.3, "mg/dL"},
	"glucose":              {70, 99, "mg/dL"},
	"calcium":              {8.6, 10.2, "mg/dL"},
	"magnesium":            {1.7, 2.2, "mg/dL"},
	"hemoglobin a1c":       {4.0, 5.6, "%"},
	"a1c":                  {4.0, 5.6, "%"},
	"tsh":                  {0.4, 4.0, "mIU/L"},
	"alt":                  {7, 56, "U/L"},
	"ast":                  {10, 40, "U/L"},
	"alkaline phosphatase": {44, 147, "U/L"},
	"total bilirubin":      {0.1, 1.2, "mg/dL"},
	"albumin":              {3.4, 5.4, "g/dL"},
	"total cholesterol":    {125, 200, "mg/dL"},
	"ldl":                  {0, 100, "mg/dL"},
	"hdl":                  {40, 90, "mg/dL"},
	"triglycerides":        {0, 150, "mg/dL"},
	"vitamin d":            {20, 50, "ng/mL"},
	"ferritin":             {12, 300, "ng/mL"},
	"inr":                  {0.8, 1.1, ""},
}

// FlagAbnormalLabs resolves a reference range for every numeric lab (the
// lab's own range wins over the standard table) and classifies the value.
// A lab with no resolvable range is skipped: no flag without a range.
// criticalFactor <= 0 falls back to DefaultCriticalFactor.
func FlagAbnormalLabs(labs []models.LabResult, criticalFactor float64) []models.LabAbnormalFlag {
	if criticalFactor <= 0 {
		criticalFactor = DefaultCriticalFactor
	}

	var out []models.LabAbnormalFlag
	for _, lab := range labs {
		if lab.Value == nil {
			continue
		}
		low, high, ok := resolveRange(lab)
		if !ok {
			continue
		}
		value := *lab.Value

		status := models.LabFlagNormal
		switch {
		case high != nil && value >= *high*criticalFactor:
			status = models.LabFlagCriticalHigh
		case low != nil && *low > 0 && value <= *low/criticalFactor:
			status = models.LabFlagCriticalLow
		case high != nil && value > *high:
			status = models.LabFlagHigh
		case low != nil && value < *low:
			status = models.LabFlagLow
		}

		out = append(out, models.LabAbnormalFlag{
			LabID:     lab.ID,
			TestName:  lab.TestName,
			Value:     value,
			Unit:      lab.Unit,
			Status:    status,
			RangeLow:  low,
			RangeHigh: high,
			Message:   flagMessage(lab.TestName, value, lab.Unit, status, low, high),
		})
	}
	return out
}

func resolveRange(lab models.LabResult) (low, high *float64, ok bool) {
	if lab.Reference != nil && (lab.Reference.Low != nil || lab.Reference.High != nil) {
		return lab.Reference.Low, lab.Reference.High, true
	}
	if std, found := standardRanges[normalizeTestName(lab.TestName)]; found {
		l, h := std.Low, std.High
		return &l, &h, true
	}
	return nil, nil, false
}

func normalizeTestName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func flagMessage(test string, value float64, unit, status string, low, high *float64) string {
	bounds := ""
	if low != nil && high != nil {
		bounds = fmt.Sprintf(" (reference %g-%g)", *low, *high)
	}
	switch status {
	case models.LabFlagNormal:
		return fmt.Sprintf("%s %g %s is within range%s", test, value, unit, bounds)
	case models.LabFlagCriticalHigh, models.LabFlagCriticalLow:
		return fmt.Sprintf("%s %g %s is critically out of range%s", test, value, unit, bounds)
	default:
		return fmt.Sprintf("%s %g %s is %s%s", test, value, unit, status, bounds)
	}
}

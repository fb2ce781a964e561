package insights

import (
	"fmt"
	"math"
	"sort"

	"healthbridge-service/internal/app/models"
)

// StableTrendThreshold is the percent change below which a lab series counts
// as stable.
const StableTrendThreshold = 5.0

// AnalyzeLabTrends groups labs by coded identity (the code wins over the
// name), keeps groups with at least two numeric dated readings, and computes
// the percent change from the first to the last reading chronologically.
// Output is sorted by absolute change, largest first.
func AnalyzeLabTrends(labs []models.LabResult) []models.LabTrend {
	groups := map[string][]models.LabResult{}
	order := []string{}
	names := map[string]string{}
	codes := map[string]string{}

	for _, lab := range labs {
		if lab.Value == nil || lab.EffectiveDate == nil {
			continue
		}
		key, code := trendKey(lab)
		if _, exists := groups[key]; !exists {
			order = append(order, key)
			names[key] = lab.TestName
			codes[key] = code
		}
		groups[key] = append(groups[key], lab)
	}

	var out []models.LabTrend
	for _, key := range order {
		series := groups[key]
		if len(series) < 2 {
			continue
		}
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].EffectiveDate.Before(*series[j].EffectiveDate)
		})

		first, last := series[0], series[len(series)-1]
		if *first.Value == 0 {
			continue
		}
		change := (*last.Value - *first.Value) / *first.Value * 100

		direction := models.TrendStable
		if math.Abs(change) >= StableTrendThreshold {
			if change > 0 {
				direction = models.TrendRising
			} else {
				direction = models.TrendFalling
			}
		}

		spanDays := int(last.EffectiveDate.Sub(*first.EffectiveDate).Hours() / 24)
		out = append(out, models.LabTrend{
			TestName:      names[key],
			Code:          codes[key],
			Direction:     direction,
			PercentChange: change,
			ReadingCount:  len(series),
			SpanDays:      spanDays,
			FirstValue:    *first.Value,
			LastValue:     *last.Value,
			LastDate:      *last.EffectiveDate,
			Message:       trendMessage(names[key], direction, change, len(series), spanDays),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].PercentChange) > math.Abs(out[j].PercentChange)
	})
	return out
}

func trendKey(lab models.LabResult) (key, code string) {
	for _, c := range lab.Codes {
		if c.CodeValue != "" {
			return c.CodeSystem + "|" + c.CodeValue, c.CodeValue
		}
	}
	return "name|" + normalizeTestName(lab.TestName), ""
}

func trendMessage(test, direction string, change float64, count, spanDays int) string {
	switch direction {
	case models.TrendStable:
		return fmt.Sprintf("%s has been stable across %d readings over %d days", test, count, spanDays)
	case models.TrendRising:
		return fmt.Sprintf("%s rose %.1f%% across %d readings over %d days", test, change, count, spanDays)
	default:
		return fmt.Sprintf("%s fell %.1f%% across %d readings over %d days", test, -change, count, spanDays)
	}
}

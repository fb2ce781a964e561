package conflicts

import (
	"fmt"
	"sort"
	"strings"

	"healthbridge-service/internal/app/models"
)

// Detect scans merged output for the five categories of cross-source
// disagreement and returns one severity-ranked list. Over-alerting is the
// policy: a reviewer can dismiss a false positive, a missed critical conflict
// cannot be recovered. The sequential conflict ids restart on every run.
//
// sources lists every source included in the run, so single-source alerts can
// name the systems that are missing the record.
func Detect(result models.MergeResult, sources []models.SourceTag) []models.Conflict {
	var found []models.Conflict
	found = append(found, detectDoseMismatches(result.Medications)...)
	found = append(found, detectAllergyPrescriptions(result.Allergies, result.Medications)...)
	found = append(found, detectMissingCrossrefs(result.Medications, sources)...)
	found = append(found, detectContradictoryConditions(result.Conditions)...)
	found = append(found, detectAllergyGaps(result.Allergies, result.AbsenceSources)...)

	sortConflicts(found)
	for i := range found {
		found[i].ID = fmt.Sprintf("conflict-%d", i+1)
	}
	return found
}

func detectDoseMismatches(meds []models.Medication) []models.Conflict {
	var out []models.Conflict
	for _, med := range meds {
		if med.Merge == nil || med.Merge.Status != models.MergeStatusConflict {
			continue
		}
		srcA, srcB := med.Merge.AllSources[0], med.Merge.AllSources[1]
		out = append(out, models.Conflict{
			Type:     models.ConflictTypeDoseMismatch,
			Severity: models.ConflictSeverityHigh,
			Description: fmt.Sprintf("%s and %s report different doses for %s",
				srcA.SystemName, srcB.SystemName, med.Name),
			Resources: []models.ConflictResource{
				{Domain: "medication", RecordID: med.Merge.MergedFromIDs[0], Display: med.Name, Source: srcA},
				{Domain: "medication", RecordID: med.Merge.MergedFromIDs[1], Display: med.Name, Source: srcB},
			},
			SourceA: srcA,
			SourceB: srcB,
		})
	}
	return out
}

// detectAllergyPrescriptions flags every active medication prescribed by a
// source that does not know about an allergy cross-reactive with it. Pairs
// where the allergy and the medication come from the same source are never
// flagged; that source's own system is assumed to reconcile them.
func detectAllergyPrescriptions(allergies []models.Allergy, meds []models.Medication) []models.Conflict {
	var out []models.Conflict
	for _, allergy := range allergies {
		entry := lookupCrossReactivity(allergy.Substance)
		if entry == nil {
			continue
		}
		allergySources := sourceSet(allergy.Merge)
		for _, med := range meds {
			if !med.IsActive() || !matchesDrugList(med.Name, entry.Drugs) {
				continue
			}
			medSource, outside := firstSourceOutside(med.Merge, allergySources)
			if !outside {
				continue
			}
			out = append(out, models.Conflict{
				Type:     models.ConflictTypeAllergyPrescription,
				Severity: models.ConflictSeverityCritical,
				Description: fmt.Sprintf("%s prescribes %s but the %s allergy (%s) is recorded only at %s",
					medSource.SystemName, med.Name, allergy.Substance, entry.Note, allergy.Source.SystemName),
				Resources: []models.ConflictResource{
					{Domain: "allergy", RecordID: allergy.ID, Display: allergy.Substance, Source: allergy.Source},
					{Domain: "medication", RecordID: med.ID, Display: med.Name, Source: medSource},
				},
				SourceA: allergy.Source,
				SourceB: medSource,
			})
		}
	}
	return out
}

func detectMissingCrossrefs(meds []models.Medication, sources []models.SourceTag) []models.Conflict {
	var out []models.Conflict
	for _, med := range meds {
		if med.Merge == nil || med.Merge.Status != models.MergeStatusSingleSource || !med.IsActive() {
			continue
		}
		severity := models.ConflictSeverityMedium
		category := highRiskCategory(med.Name)
		if category != "" {
			severity = models.ConflictSeverityHigh
		}
		knowing := med.Merge.AllSources[0]
		missing := sourceNamesExcept(sources, knowing)
		if len(missing) == 0 {
			// Single-source run; nobody else to cross-reference against.
			continue
		}
		desc := fmt.Sprintf("Active medication %s is known only to %s; %s have no record of it",
			med.Name, knowing.SystemName, strings.Join(missing, ", "))
		if category != "" {
			desc = fmt.Sprintf("%s (%s)", desc, category)
		}
		out = append(out, models.Conflict{
			Type:        models.ConflictTypeMissingCrossref,
			Severity:    severity,
			Description: desc,
			Resources: []models.ConflictResource{
				{Domain: "medication", RecordID: med.ID, Display: med.Name, Source: knowing},
			},
			SourceA: knowing,
			SourceB: firstOtherSource(sources, knowing),
		})
	}
	return out
}

func detectContradictoryConditions(conditions []models.Condition) []models.Conflict {
	var out []models.Conflict
	for _, cond := range conditions {
		if cond.Merge == nil || cond.Merge.Status != models.MergeStatusConflict {
			continue
		}
		srcA, srcB := cond.Merge.AllSources[0], cond.Merge.AllSources[1]
		out = append(out, models.Conflict{
			Type:     models.ConflictTypeContradictoryCondition,
			Severity: models.ConflictSeverityMedium,
			Description: fmt.Sprintf("%s and %s disagree on the clinical status of %s",
				srcA.SystemName, srcB.SystemName, cond.Name),
			Resources: []models.ConflictResource{
				{Domain: "condition", RecordID: cond.Merge.MergedFromIDs[0], Display: cond.Name, Source: srcA},
				{Domain: "condition", RecordID: cond.Merge.MergedFromIDs[1], Display: cond.Name, Source: srcB},
			},
			SourceA: srcA,
			SourceB: srcB,
		})
	}
	return out
}

// detectAllergyGaps emits one critical conflict per source that asserted "no
// known allergies" while another source holds real allergy data.
func detectAllergyGaps(allergies []models.Allergy, absenceSources []models.SourceTag) []models.Conflict {
	if len(allergies) == 0 {
		return nil
	}
	var out []models.Conflict
	for _, absent := range absenceSources {
		var details []string
		resources := []models.ConflictResource{}
		for _, a := range allergies {
			detail := a.Substance
			if a.Criticality != "" {
				detail += " (criticality: " + a.Criticality + ")"
			}
			if a.Reaction != "" {
				detail += " - " + a.Reaction
			}
			details = append(details, detail)
			resources = append(resources, models.ConflictResource{
				Domain: "allergy", RecordID: a.ID, Display: a.Substance, Source: a.Source,
			})
		}
		knowing := allergies[0].Source
		out = append(out, models.Conflict{
			Type:     models.ConflictTypeAllergyGap,
			Severity: models.ConflictSeverityCritical,
			Description: fmt.Sprintf("%s has no allergy data but %s records: %s",
				absent.SystemName, knowing.SystemName, strings.Join(details, "; ")),
			Resources: resources,
			SourceA:   knowing,
			SourceB:   absent,
		})
	}
	return out
}

func lookupCrossReactivity(substance string) *CrossReactivityEntry {
	normalized := strings.ToLower(strings.TrimSpace(substance))
	for i := range CrossReactivityTable {
		for _, s := range CrossReactivityTable[i].Substances {
			if normalized == s || strings.Contains(normalized, s) {
				return &CrossReactivityTable[i]
			}
		}
	}
	return nil
}

func matchesDrugList(medicationName string, drugs []string) bool {
	name := strings.ToLower(medicationName)
	for _, d := range drugs {
		if strings.Contains(name, d) {
			return true
		}
	}
	return false
}

func sourceSet(meta *models.MergeMetadata) map[string]bool {
	set := map[string]bool{}
	if meta == nil {
		return set
	}
	for _, s := range meta.AllSources {
		set[s.SystemID] = true
	}
	return set
}

// firstSourceOutside returns the first source of the record that is not in
// the given set, and whether one exists.
func firstSourceOutside(meta *models.MergeMetadata, set map[string]bool) (models.SourceTag, bool) {
	if meta == nil {
		return models.SourceTag{}, false
	}
	for _, s := range meta.AllSources {
		if !set[s.SystemID] {
			return s, true
		}
	}
	return models.SourceTag{}, false
}

func sourceNamesExcept(sources []models.SourceTag, except models.SourceTag) []string {
	var names []string
	for _, s := range sources {
		if s.SystemID != except.SystemID {
			names = append(names, s.SystemName)
		}
	}
	return names
}

func firstOtherSource(sources []models.SourceTag, except models.SourceTag) models.SourceTag {
	for _, s := range sources {
		if s.SystemID != except.SystemID {
			return s
		}
	}
	return models.SourceTag{}
}

var severityRank = map[models.ConflictSeverity]int{
	models.ConflictSeverityCritical: 0,
	models.ConflictSeverityHigh:     1,
	models.ConflictSeverityMedium:   2,
}

var typeRank = map[models.ConflictType]int{
	models.ConflictTypeAllergyGap:             0,
	models.ConflictTypeAllergyPrescription:    1,
	models.ConflictTypeDoseMismatch:           2,
	models.ConflictTypeMissingCrossref:        3,
	models.ConflictTypeContradictoryCondition: 4,
}

// sortConflicts orders by severity then by the fixed type priority so the
// rendered list is stable and predictable.
func sortConflicts(conflicts []models.Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		if severityRank[conflicts[i].Severity] != severityRank[conflicts[j].Severity] {
			return severityRank[conflicts[i].Severity] < severityRank[conflicts[j].Severity]
		}
		return typeRank[conflicts[i].Type] < typeRank[conflicts[j].Type]
	})
}

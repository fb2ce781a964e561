package insights

import "healthbridge-service/internal/app/models"

// conflictTemplates maps each conflict type to a patient-facing rendering.
// This is a presentation transform over detected conflicts, not new analysis.
var conflictTemplates = map[models.ConflictType]struct {
	Title      string
	ActionItem string
}{
	models.ConflictTypeAllergyGap: {
		Title:      "An allergy is missing from one of your health records",
		ActionItem: "Ask the provider with no allergy on file to update your record before any new prescription",
	},
	models.ConflictTypeAllergyPrescription: {
		Title:      "A prescribed medication may conflict with a recorded allergy",
		ActionItem: "Contact the prescribing provider before taking the medication",
	},
	models.ConflictTypeDoseMismatch: {
		Title:      "Your providers have different doses on file for the same medication",
		ActionItem: "Confirm the correct dose with your pharmacist or prescriber",
	},
	models.ConflictTypeMissingCrossref: {
		Title:      "A medication is known to only one of your providers",
		ActionItem: "Share your full medication list at your next visit",
	},
	models.ConflictTypeContradictoryCondition: {
		Title:      "Your providers disagree about the status of a condition",
		ActionItem: "Ask your primary provider to reconcile your problem list",
	},
}

// TranslateConflicts renders each detected conflict into a patient-facing
// alert using the fixed template for its type.
func TranslateConflicts(conflicts []models.Conflict) []models.SourceConflictAlert {
	out := make([]models.SourceConflictAlert, 0, len(conflicts))
	for _, c := range conflicts {
		tpl, ok := conflictTemplates[c.Type]
		if !ok {
			continue
		}
		out = append(out, models.SourceConflictAlert{
			ConflictID:  c.ID,
			Title:       tpl.Title,
			Explanation: c.Description,
			ActionItem:  tpl.ActionItem,
			Severity:    string(c.Severity),
		})
	}
	return out
}

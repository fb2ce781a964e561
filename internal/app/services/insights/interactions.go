package insights

import (
	"regexp"
	"sort"
	"strings"

	"healthbridge-service/internal/app/models"
)

// InteractionRule pairs two drug-name patterns with the clinical effect of
// taking them together. The table is versioned contract data.
type InteractionRule struct {
	ID       string
	PatternA *regexp.Regexp
	PatternB *regexp.Regexp
	Severity string
	Effect   string
}

const (
	InteractionCritical = "critical"
	InteractionHigh     = "high"
	InteractionModerate = "moderate"
	InteractionLow      = "low"
)

var InteractionTable = []InteractionRule{
	{"warfarin-nsaid", re(`warfarin|coumadin`), re(`ibuprofen|naproxen|aspirin|ketorolac|diclofenac|meloxicam`), InteractionCritical, "Greatly increased bleeding risk from combined anticoagulation and platelet inhibition"},
	{"warfarin-abx", re(`warfarin|coumadin`), re(`ciprofloxacin|metronidazole|flagyl|bactrim|sulfamethoxazole|fluconazole`), InteractionHigh, "Antibiotic raises INR and bleeding risk by inhibiting warfarin metabolism"},
	{"warfarin-amiodarone", re(`warfarin|coumadin`), re(`amiodarone`), InteractionHigh, "Amiodarone potentiates warfarin; dose reduction usually required"},
	{"nitrate-pde5", re(`nitroglycerin|isosorbide`), re(`sildenafil|tadalafil|vardenafil`), InteractionCritical, "Profound hypotension when nitrates are combined with PDE5 inhibitors"},
	{"ssri-maoi", re(`sertraline|fluoxetine|paroxetine|escitalopram|citalopram`), re(`phenelzine|tranylcypromine|selegiline|isocarboxazid`), InteractionCritical, "Risk of serotonin syndrome; combination is contraindicated"},
	{"ssri-tramadol", re(`sertraline|fluoxetine|paroxetine|escitalopram|citalopram`), re(`tramadol`), InteractionHigh, "Additive serotonergic activity raises serotonin syndrome risk"},
	{"ssri-nsaid", re(`sertraline|fluoxetine|paroxetine|escitalopram|citalopram`), re(`ibuprofen|naproxen|aspirin`), InteractionModerate, "SSRIs with NSAIDs increase gastrointestinal bleeding risk"},
	{"opioid-benzo", re(`oxycodone|hydrocodone|morphine|fentanyl|tramadol|codeine|methadone`), re(`alprazolam|lorazepam|diazepam|clonazepam|temazepam`), InteractionCritical, "Combined CNS and respiratory depression; boxed warning combination"},
	{"methotrexate-nsaid", re(`methotrexate`), re(`ibuprofen|naproxen|aspirin|ketorolac`), InteractionHigh, "NSAIDs reduce methotrexate clearance and can cause toxicity"},
	{"methotrexate-bactrim", re(`methotrexate`), re(`bactrim|sulfamethoxazole|trimethoprim`), InteractionHigh, "Additive antifolate effect risks severe myelosuppression"},
	{"acei-potassium", re(`lisinopril|enalapril|ramipril|benazepril|losartan|valsartan`), re(`spironolactone|potassium|eplerenone|amiloride`), InteractionHigh, "Risk of hyperkalemia from dual potassium-retaining agents"},
	{"acei-nsaid", re(`lisinopril|enalapril|ramipril|benazepril`), re(`ibuprofen|naproxen|diclofenac|meloxicam`), InteractionModerate, "NSAIDs blunt ACE-inhibitor effect and stress renal perfusion"},
	{"digoxin-amiodarone", re(`digoxin`), re(`amiodarone`), InteractionHigh, "Amiodarone roughly doubles digoxin levels; toxicity risk"},
	{"digoxin-verapamil", re(`digoxin`), re(`verapamil|diltiazem`), InteractionHigh, "Calcium channel blockers raise digoxin levels and slow AV conduction"},
	{"statin-macrolide", re(`simvastatin|atorvastatin|lovastatin`), re(`clarithromycin|erythromycin`), InteractionHigh, "CYP3A4 inhibition raises statin levels; rhabdomyolysis risk"},
	{"statin-fibrate", re(`simvastatin|atorvastatin|lovastatin|rosuvastatin`), re(`gemfibrozil`), InteractionHigh, "Gemfibrozil with statins markedly raises myopathy risk"},
	{"clopidogrel-ppi", re(`clopidogrel|plavix`), re(`omeprazole|esomeprazole`), InteractionModerate, "Proton pump inhibitor reduces clopidogrel activation"},
	{"lithium-nsaid", re(`lithium`), re(`ibuprofen|naproxen|diclofenac|meloxicam`), InteractionHigh, "NSAIDs reduce lithium clearance; levels can climb to toxicity"},
	{"lithium-acei", re(`lithium`), re(`lisinopril|enalapril|ramipril|losartan`), InteractionModerate, "ACE inhibitors decrease lithium excretion"},
	{"amiodarone-quinolone", re(`amiodarone`), re(`ciprofloxacin|levofloxacin|moxifloxacin`), InteractionHigh, "Additive QT prolongation; torsades risk"},
	{"insulin-betablocker", re(`insulin|glipizide|glyburide`), re(`metoprolol|atenolol|propranolol|carvedilol`), InteractionLow, "Beta blockers can mask hypoglycemia symptoms"},
	{"levothyroxine-binder", re(`levothyroxine|synthroid`), re(`calcium carbonate|ferrous|iron sulfate`), InteractionLow, "Mineral supplements impair levothyroxine absorption when co-dosed"},
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

// Statuses under which a medication still counts for interaction checking.
var activeEquivalent = map[string]bool{
	models.MedicationStatusActive:    true,
	models.MedicationStatusCompleted: true,
	models.MedicationStatusOnHold:    true,
}

var interactionSeverityRank = map[string]int{
	InteractionCritical: 0,
	InteractionHigh:     1,
	InteractionModerate: 2,
	InteractionLow:      3,
}

// FindInteractions compares every unordered pair of active-equivalent merged
// medications against the interaction table. A pair matches a rule when the
// two patterns match the two drug names in either orientation. Duplicate hits
// on the same name pair and effect collapse to one.
func FindInteractions(meds []models.Medication) []models.DrugInteraction {
	var candidates []models.Medication
	for _, m := range meds {
		if activeEquivalent[m.Status] {
			candidates = append(candidates, m)
		}
	}

	seen := map[string]bool{}
	var out []models.DrugInteraction
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			for _, rule := range InteractionTable {
				if !rulePairMatches(rule, a.Name, b.Name) {
					continue
				}
				key := pairKey(a.Name, b.Name) + "|" + rule.Effect
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, models.DrugInteraction{
					MedicationA: a.Name,
					MedicationB: b.Name,
					MedAID:      a.ID,
					MedBID:      b.ID,
					Severity:    rule.Severity,
					Effect:      rule.Effect,
				})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return interactionSeverityRank[out[i].Severity] < interactionSeverityRank[out[j].Severity]
	})
	return out
}

func rulePairMatches(rule InteractionRule, nameA, nameB string) bool {
	return (rule.PatternA.MatchString(nameA) && rule.PatternB.MatchString(nameB)) ||
		(rule.PatternA.MatchString(nameB) && rule.PatternB.MatchString(nameA))
}

func pairKey(a, b string) string {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la > lb {
		la, lb = lb, la
	}
	return la + "+" + lb
}

package conflicts

import "regexp"

// CrossReactivityEntry maps an allergy substance class to the drug names a
// reaction to that substance predicts. The tables here are versioned contract
// data; swapping in a production drug database must not touch control flow.
type CrossReactivityEntry struct {
	Class      string
	Substances []string
	Drugs      []string
	Note       string
}

// CrossReactivityTable holds the five supported allergy classes.
var CrossReactivityTable = []CrossReactivityEntry{
	{
		Class:      "penicillin",
		Substances: []string{"penicillin", "penicillin v", "penicillin g", "penicillin vk", "pcn"},
		Drugs: []string{
			"penicillin", "amoxicillin", "ampicillin", "augmentin",
			"piperacillin", "dicloxacillin", "nafcillin", "oxacillin",
			// Cephalosporins carry roughly 1-2% cross-reactivity.
			"cephalexin", "cefazolin", "ceftriaxone", "cefuroxime", "cefdinir",
		},
		Note: "beta-lactam class, includes cephalosporins at ~1-2% cross-reactivity",
	},
	{
		Class:      "cephalosporin",
		Substances: []string{"cephalosporin", "cephalexin", "keflex", "ceftriaxone"},
		Drugs: []string{
			"cephalexin", "cefazolin", "ceftriaxone", "cefuroxime", "cefdinir",
			"cefepime", "ceftazidime",
		},
		Note: "cephalosporin class",
	},
	{
		Class:      "sulfa",
		Substances: []string{"sulfa", "sulfonamide", "sulfamethoxazole", "bactrim"},
		Drugs: []string{
			"sulfamethoxazole", "trimethoprim-sulfamethoxazole", "bactrim",
			"sulfasalazine", "sulfadiazine",
		},
		Note: "sulfonamide antibiotics",
	},
	{
		Class:      "ibuprofen",
		Substances: []string{"ibuprofen", "advil", "motrin"},
		Drugs:      nsaidClass,
		Note:       "NSAID class cross-reactivity",
	},
	{
		Class:      "aspirin",
		Substances: []string{"aspirin", "asa", "acetylsalicylic acid"},
		Drugs:      nsaidClass,
		Note:       "NSAID class cross-reactivity",
	},
}

var nsaidClass = []string{
	"ibuprofen", "naproxen", "aspirin", "ketorolac", "diclofenac",
	"indomethacin", "meloxicam", "celecoxib", "piroxicam",
}

// HighRiskPattern flags single-source active medications whose invisibility to
// the other systems is dangerous in itself.
type HighRiskPattern struct {
	Category string
	Pattern  *regexp.Regexp
}

var HighRiskPatterns = []HighRiskPattern{
	{"anticoagulant", regexp.MustCompile(`(?i)warfarin|coumadin|apixaban|eliquis|rivaroxaban|xarelto|dabigatran|pradaxa|heparin|enoxaparin|clopidogrel|plavix`)},
	{"corticosteroid", regexp.MustCompile(`(?i)prednisone|prednisolone|dexamethasone|hydrocortisone|methylprednisolone`)},
	{"opioid", regexp.MustCompile(`(?i)oxycodone|hydrocodone|morphine|fentanyl|tramadol|codeine|methadone|hydromorphone`)},
	{"narrow-therapeutic-index", regexp.MustCompile(`(?i)digoxin|lithium|phenytoin|carbamazepine|theophylline|levothyroxine|tacrolimus`)},
	{"immunosuppressant", regexp.MustCompile(`(?i)cyclosporine|azathioprine|methotrexate|mycophenolate|sirolimus`)},
	{"insulin", regexp.MustCompile(`(?i)insulin|lantus|humalog|novolog|levemir|tresiba`)},
}

// highRiskCategory returns the matching category name, or "" when the drug is
// not on the high-risk list.
func highRiskCategory(medicationName string) string {
	for _, p := range HighRiskPatterns {
		if p.Pattern.MatchString(medicationName) {
			return p.Category
		}
	}
	return ""
}

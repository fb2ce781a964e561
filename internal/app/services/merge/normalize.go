package merge

import (
	"strings"
	"unicode"
)

// Words stripped from a medication name before comparing: dose figures, units
// and dose forms carry no identity.
var medicationNoiseWords = map[string]bool{
	"mg": true, "mcg": true, "g": true, "ml": true, "units": true, "unit": true,
	"tablet": true, "tablets": true, "tab": true, "tabs": true,
	"capsule": true, "capsules": true, "cap": true, "caps": true,
	"oral": true, "solution": true, "suspension": true, "injection": true,
	"cream": true, "ointment": true, "patch": true, "spray": true,
	"extended": true, "release": true, "er": true, "xr": true, "sr": true,
	"daily": true, "twice": true, "hcl": true, "sodium": true,
}

// NormalizeMedicationName lowercases a drug name and strips dose, unit and
// form words, keeping only the significant name words.
func NormalizeMedicationName(name string) string {
	words := splitWords(name)
	kept := words[:0]
	for _, w := range words {
		if medicationNoiseWords[w] || isNumericWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// MedicationNamesEquivalent applies the normalized-name heuristic: equal after
// normalization, or sharing the same leading significant word.
func MedicationNamesEquivalent(a, b string) bool {
	na, nb := NormalizeMedicationName(a), NormalizeMedicationName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return firstWord(na) == firstWord(nb)
}

// Absence markers are assertions of "no known allergies", not allergies.
var absenceMarkers = map[string]bool{
	"":                        true,
	"nkda":                    true,
	"nka":                     true,
	"none":                    true,
	"no known allergies":      true,
	"no known drug allergies": true,
	"not on file":             true,
	"no allergies":            true,
}

// IsAbsenceMarker reports whether an allergy substance text asserts the
// absence of allergy data rather than a real allergy.
func IsAbsenceMarker(substance string) bool {
	return absenceMarkers[strings.ToLower(strings.TrimSpace(substance))]
}

// NormalizeSubstance lowercases an allergy substance and drops punctuation so
// "Penicillin V-K" and "penicillin vk" compare equal.
func NormalizeSubstance(substance string) string {
	return strings.Join(splitWords(substance), " ")
}

// NormalizeVaccineName lowercases a vaccine name and strips punctuation and
// dose qualifiers.
func NormalizeVaccineName(name string) string {
	words := splitWords(name)
	kept := words[:0]
	for _, w := range words {
		if w == "dose" || w == "vaccine" || isNumericWord(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
	})
}

func isNumericWord(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) && r != '.' && r != '/' {
			return false
		}
	}
	return len(w) > 0
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// NormalizeDosageText collapses a free-text dosage instruction to lowercase
// single-spaced words so incidental whitespace or phrasing case differences do
// not register as dose conflicts.
func NormalizeDosageText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

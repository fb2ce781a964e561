package matching

import (
	"fmt"
	"strings"
	"unicode"

	"healthbridge-service/internal/app/models"
)

// Field weights for demographic scoring. A candidate source is only allowed
// into the merge when the combined confidence reaches MatchThreshold.
const (
	LastNameWeight  = 0.30
	FirstNameWeight = 0.30
	BirthDateWeight = 0.30
	GenderWeight    = 0.10
	MatchThreshold  = 0.80
)

// Match scores whether two demographic records describe the same person.
// It is a pure function: missing fields contribute neither points nor a
// conflict entry, and medical record numbers are never compared because they
// are expected to differ legitimately across systems.
func Match(primary, candidate models.Demographics) models.MatchResult {
	result := models.MatchResult{
		MatchedOn: []string{},
		Conflicts: []string{},
	}

	scoreField(&result, "lastName", LastNameWeight,
		normalizeName(primary.LastName), normalizeName(candidate.LastName),
		primary.LastName, candidate.LastName)

	scoreField(&result, "firstName", FirstNameWeight,
		normalizeName(primary.FirstName), normalizeName(candidate.FirstName),
		primary.FirstName, candidate.FirstName)

	scoreField(&result, "birthDate", BirthDateWeight,
		strings.TrimSpace(primary.BirthDate), strings.TrimSpace(candidate.BirthDate),
		primary.BirthDate, candidate.BirthDate)

	scoreField(&result, "gender", GenderWeight,
		strings.ToLower(strings.TrimSpace(primary.Gender)), strings.ToLower(strings.TrimSpace(candidate.Gender)),
		primary.Gender, candidate.Gender)

	result.IsMatch = result.Confidence >= MatchThreshold
	return result
}

func scoreField(result *models.MatchResult, field string, weight float64, a, b, rawA, rawB string) {
	if a == "" || b == "" {
		return
	}
	if a == b {
		result.Confidence += weight
		result.MatchedOn = append(result.MatchedOn, field)
		return
	}
	result.Conflicts = append(result.Conflicts,
		fmt.Sprintf("%s mismatch: %q vs %q", field, rawA, rawB))
}

// normalizeName lowercases, strips diacritics, and removes every non-letter
// rune so that "O'Brien" and "OBrien", or "José" and "Jose", compare equal.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if folded, ok := diacritics[r]; ok {
			b.WriteRune(folded)
			continue
		}
		if unicode.IsLetter(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var diacritics = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o', 'ø': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ñ': 'n', 'ç': 'c', 'ý': 'y', 'ÿ': 'y',
}

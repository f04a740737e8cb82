package pipeline

import (
	"strings"

	"pantry-chef/internal/core/pantry"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultFuzzyCutoff is the minimum sequence-similarity ratio for a fuzzy
// match to be accepted.
const DefaultFuzzyCutoff = 0.6

// Strategy records which tier of the resolver produced a match.
type Strategy string

const (
	// StrategyExact means the normalized name was already in the pantry.
	StrategyExact Strategy = "exact"
	// StrategyFuzzy means the closest pantry name met the similarity cutoff.
	StrategyFuzzy Strategy = "fuzzy"
	// StrategySubstring means one name contained the other.
	StrategySubstring Strategy = "substring"
	// StrategyImport means nothing matched; the normalized raw name is kept
	// with no pantry identifier behind it.
	StrategyImport Strategy = "import"
)

// Resolution is the outcome of resolving one raw ingredient name.
type Resolution struct {
	Name     string
	Strategy Strategy
}

// Resolve maps a raw ingredient name to a canonical pantry name. It never
// fails; when no tier matches, the normalized raw name is returned as an
// import name and the inconsistency surfaces at identifier-binding time.
//
// Tiers, first hit wins: exact lookup, closest-by-ratio fuzzy match at or
// above cutoff, then substring containment in either direction. Fuzzy is
// deliberately tried before substring with no cross-strategy confidence
// comparison.
func Resolve(rawName string, idx *pantry.Index, cutoff float64) Resolution {
	name := pantry.Normalize(rawName)

	if idx.Has(name) {
		return Resolution{Name: name, Strategy: StrategyExact}
	}

	names := idx.Names()

	if best, ok := closestMatch(name, names, cutoff); ok {
		return Resolution{Name: best, Strategy: StrategyFuzzy}
	}

	// Substring scan order follows the name set's natural iteration order;
	// ties are nondeterministic, which is acceptable at this confidence tier.
	for _, pantryName := range names {
		if strings.Contains(pantryName, name) || strings.Contains(name, pantryName) {
			return Resolution{Name: pantryName, Strategy: StrategySubstring}
		}
	}

	return Resolution{Name: name, Strategy: StrategyImport}
}

// closestMatch returns the single pantry name with the highest
// Ratcliff/Obershelp ratio against name, accepted only at or above cutoff.
func closestMatch(name string, candidates []string, cutoff float64) (string, bool) {
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}

	var best string
	bestRatio := 0.0
	left := strings.Split(name, "")
	for _, candidate := range candidates {
		ratio := difflib.NewMatcher(left, strings.Split(candidate, "")).Ratio()
		if ratio > bestRatio {
			bestRatio = ratio
			best = candidate
		}
	}

	if best != "" && bestRatio >= cutoff {
		return best, true
	}
	return "", false
}

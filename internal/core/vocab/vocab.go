// Package vocab holds the closed categorical vocabulary: cuisines, diets,
// difficulties, protein-type exemplars, meal-type tags and the cleanup-factor
// guide. The tables are embedded at build time, parsed once, and treated as
// immutable for the lifetime of the process.
package vocab

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"pantry-chef/internal/pkg/common"
)

//go:embed data/*.json
var dataFS embed.FS

// ProteinCategory is one tier-1 protein bucket with its tier-2 exemplars.
type ProteinCategory struct {
	Category string   `json:"category"`
	Examples []string `json:"examples"`
}

// CleanupFactor describes one value on the 1-5 cleanup scale.
type CleanupFactor struct {
	Value       int    `json:"value"`
	Description string `json:"description"`
}

// Store is the loaded vocabulary. Safe for unsynchronized concurrent reads
// after Load returns.
type Store struct {
	Cuisines          []string
	Diets             []string
	Difficulties      []string
	ProteinCategories []ProteinCategory
	MealClassification map[string][]string
	CleanupScale      []CleanupFactor

	cuisines map[string]struct{}
	diets    map[string]struct{}
	// proteins is the flattened tier-2 exemplar set, lower-cased.
	proteins map[string]struct{}
	// mealTags is the flattened tag set across classification categories.
	mealTags map[string]struct{}
}

// Load parses the embedded tables into a Store.
func Load() (*Store, error) {
	s := &Store{}

	var cuisines struct {
		Cuisines []string `json:"cuisines"`
	}
	if err := readTable("cuisines.json", &cuisines); err != nil {
		return nil, err
	}
	s.Cuisines = cuisines.Cuisines

	var diets struct {
		Diets []string `json:"diets"`
	}
	if err := readTable("diets_tag.json", &diets); err != nil {
		return nil, err
	}
	s.Diets = diets.Diets

	var difficulty struct {
		Difficulty []string `json:"difficulty"`
	}
	if err := readTable("difficulty_tag.json", &difficulty); err != nil {
		return nil, err
	}
	s.Difficulties = difficulty.Difficulty

	var proteins struct {
		ProteinTypes []ProteinCategory `json:"protein_types"`
	}
	if err := readTable("protein_types.json", &proteins); err != nil {
		return nil, err
	}
	s.ProteinCategories = proteins.ProteinTypes

	var mealTypes struct {
		MealClassification map[string][]string `json:"meal_classification"`
	}
	if err := readTable("meal_types.json", &mealTypes); err != nil {
		return nil, err
	}
	s.MealClassification = mealTypes.MealClassification

	var cleanup struct {
		CleanupScale []CleanupFactor `json:"cleanup_scale"`
	}
	if err := readTable("cleanup_factors.json", &cleanup); err != nil {
		return nil, err
	}
	s.CleanupScale = cleanup.CleanupScale

	s.buildLookups()
	return s, nil
}

func readTable(name string, v interface{}) error {
	data, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("failed to read vocabulary table %s: %w", name, err)
	}
	if err := common.ParseJSONBytes(data, v); err != nil {
		return fmt.Errorf("failed to parse vocabulary table %s: %w", name, err)
	}
	return nil
}

func (s *Store) buildLookups() {
	s.cuisines = make(map[string]struct{}, len(s.Cuisines))
	for _, c := range s.Cuisines {
		s.cuisines[c] = struct{}{}
	}

	s.diets = make(map[string]struct{}, len(s.Diets))
	for _, d := range s.Diets {
		s.diets[d] = struct{}{}
	}

	s.proteins = make(map[string]struct{})
	for _, category := range s.ProteinCategories {
		for _, example := range category.Examples {
			s.proteins[strings.ToLower(example)] = struct{}{}
		}
	}

	s.mealTags = make(map[string]struct{})
	for _, tags := range s.MealClassification {
		for _, tag := range tags {
			s.mealTags[tag] = struct{}{}
		}
	}
}

// HasCuisine reports whether name is a canonical cuisine, case-sensitively.
func (s *Store) HasCuisine(name string) bool {
	_, ok := s.cuisines[name]
	return ok
}

// HasDiet reports whether name is a canonical diet. Diets are stored
// lower-case.
func (s *Store) HasDiet(name string) bool {
	_, ok := s.diets[name]
	return ok
}

// HasDifficulty reports whether name is one of the fixed difficulty values.
func (s *Store) HasDifficulty(name string) bool {
	for _, d := range s.Difficulties {
		if d == name {
			return true
		}
	}
	return false
}

// HasProtein reports whether name matches a tier-2 protein exemplar. The
// lookup is lower-cased.
func (s *Store) HasProtein(name string) bool {
	_, ok := s.proteins[strings.ToLower(name)]
	return ok
}

// HasMealTag reports whether tag is present verbatim in the flattened tag set.
func (s *Store) HasMealTag(tag string) bool {
	_, ok := s.mealTags[tag]
	return ok
}

// ProteinExemplars returns the flattened tier-2 exemplar names, title-cased
// for prompt display.
func (s *Store) ProteinExemplars() []string {
	var out []string
	for _, category := range s.ProteinCategories {
		out = append(out, category.Examples...)
	}
	return out
}

// MealTags returns the flattened meal tag list, sorted so prompt text built
// from it is stable across calls.
func (s *Store) MealTags() []string {
	out := make([]string, 0, len(s.mealTags))
	for tag := range s.mealTags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// CleanupGuide renders the 1-5 cleanup scale as prompt text.
func (s *Store) CleanupGuide() string {
	var sb strings.Builder
	sb.WriteString("CLEANUP FACTOR GUIDE (1-5):")
	for _, item := range s.CleanupScale {
		sb.WriteString(fmt.Sprintf("\n- %d: %s", item.Value, item.Description))
	}
	return sb.String()
}

package pipeline

import (
	"fmt"
	"strings"

	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/core/vocab"
	"pantry-chef/internal/pkg/common"
)

// Policy selects how unmatched categorical values and ingredients are
// handled during assembly.
type Policy string

const (
	// PolicyStrict fails with a SchemaError on the first unmatched field.
	PolicyStrict Policy = "strict"
	// PolicyLenient applies the fallback table and always returns a record.
	PolicyLenient Policy = "lenient"
)

// Assembler walks a raw model response through extraction, normalization and
// ingredient resolution and produces a validated recipe record.
type Assembler struct {
	norm   *Normalizer
	policy Policy
	cutoff float64
}

// NewAssembler creates an Assembler. cutoff is the fuzzy-match similarity
// threshold; zero means DefaultFuzzyCutoff.
func NewAssembler(v *vocab.Store, policy Policy, cutoff float64) *Assembler {
	if cutoff <= 0 {
		cutoff = DefaultFuzzyCutoff
	}
	return &Assembler{
		norm:   NewNormalizer(v),
		policy: policy,
		cutoff: cutoff,
	}
}

// Policy returns the configured policy.
func (a *Assembler) Policy() Policy {
	return a.policy
}

// Assemble extracts a JSON object from text, validates it against the
// vocabulary and the pantry index, and returns the validated record with all
// coercion diagnostics. Failures are *ExtractionError or *SchemaError.
func (a *Assembler) Assemble(text string, idx *pantry.Index) (*ValidatedRecipe, []Warning, error) {
	raw, err := Extract(text)
	if err != nil {
		return nil, nil, err
	}

	var payload RawRecipePayload
	if err := common.ParseJSON(raw, &payload); err != nil {
		return nil, nil, &SchemaError{Reason: fmt.Sprintf("malformed payload: %v", err)}
	}

	if err := checkStructure(&payload); err != nil {
		return nil, nil, err
	}

	// The cleanup factor is a numeric constraint, not a vocabulary lookup.
	// It is never coerced, under either policy.
	if payload.CleanupFactor < 1 || payload.CleanupFactor > 5 {
		return nil, nil, &SchemaError{
			Field:  "cleanup_factor",
			Reason: fmt.Sprintf("value %d outside range [1,5]", payload.CleanupFactor),
		}
	}

	var warnings []Warning

	cuisine, err := a.categorical("cuisine", payload.Cuisine, a.norm.Cuisine, &warnings)
	if err != nil {
		return nil, nil, err
	}
	diet, err := a.categorical("diet", payload.Diet, a.norm.Diet, &warnings)
	if err != nil {
		return nil, nil, err
	}
	difficulty, err := a.categorical("difficulty", payload.Difficulty, a.norm.Difficulty, &warnings)
	if err != nil {
		return nil, nil, err
	}
	protein, err := a.categorical("protein_type", payload.ProteinType, a.norm.ProteinType, &warnings)
	if err != nil {
		return nil, nil, err
	}

	mealTypes, dropped := a.norm.MealTypes(payload.MealTypes)
	for _, tag := range dropped {
		if a.policy == PolicyStrict {
			return nil, nil, &SchemaError{Field: "meal_types", Reason: fmt.Sprintf("unknown tag %q", tag)}
		}
		warnings = append(warnings, Warning{
			Kind:     WarnUnresolvedCategory,
			Field:    "meal_types",
			Received: tag,
		})
	}

	instructions := make([]Instruction, 0, len(payload.Instructions))
	for _, ins := range payload.Instructions {
		phase, err := a.categorical("phase", ins.Phase, a.norm.Phase, &warnings)
		if err != nil {
			return nil, nil, err
		}
		// Step numbers are consumed as supplied; no renumbering or
		// gap-filling happens here.
		instructions = append(instructions, Instruction{
			Phase:      phase,
			StepNumber: ins.StepNumber,
			Text:       ins.Text,
		})
	}

	groups := make([]IngredientGroup, 0, len(payload.IngredientGroups))
	for _, group := range payload.IngredientGroups {
		out := IngredientGroup{Component: group.Component}
		for _, ing := range group.Ingredients {
			res := Resolve(ing.Name, idx, a.cutoff)
			switch res.Strategy {
			case StrategyFuzzy, StrategySubstring:
				warnings = append(warnings, Warning{
					Kind:        WarnCoercedField,
					Field:       "ingredient",
					Received:    ing.Name,
					Substituted: res.Name,
				})
			case StrategyImport:
				if a.policy == PolicyStrict {
					return nil, nil, &SchemaError{
						Field:  "ingredient",
						Reason: fmt.Sprintf("%q not found in pantry", ing.Name),
					}
				}
				warnings = append(warnings, Warning{
					Kind:        WarnUnresolvedIngredient,
					Field:       "ingredient",
					Received:    ing.Name,
					Substituted: res.Name,
				})
			}
			out.Ingredients = append(out.Ingredients, Ingredient{
				Name:   res.Name,
				Amount: ing.Amount,
				Unit:   ing.Unit,
			})
		}
		groups = append(groups, out)
	}

	return &ValidatedRecipe{
		Title:            payload.Title,
		Cuisine:          cuisine,
		Diet:             diet,
		Difficulty:       difficulty,
		CleanupFactor:    payload.CleanupFactor,
		ProteinType:      protein,
		MealTypes:        mealTypes,
		IngredientGroups: groups,
		Instructions:     instructions,
	}, warnings, nil
}

// categorical runs one coercion function and applies the policy: fallback
// plus warning under lenient, SchemaError under strict. Heuristic rewrites
// count as matches but still emit a diagnostic.
func (a *Assembler) categorical(field, raw string, coerce func(string) (string, bool), warnings *[]Warning) (string, error) {
	value, matched := coerce(raw)
	if !matched {
		if a.policy == PolicyStrict {
			return "", &SchemaError{Field: field, Reason: fmt.Sprintf("value %q not in vocabulary", raw)}
		}
		*warnings = append(*warnings, Warning{
			Kind:        WarnUnresolvedCategory,
			Field:       field,
			Received:    raw,
			Substituted: value,
		})
		return value, nil
	}
	if value != raw {
		*warnings = append(*warnings, Warning{
			Kind:        WarnCoercedField,
			Field:       field,
			Received:    raw,
			Substituted: value,
		})
	}
	return value, nil
}

// checkStructure enforces presence of required keys and minimal shape.
func checkStructure(p *RawRecipePayload) error {
	if strings.TrimSpace(p.Title) == "" {
		return &SchemaError{Field: "title", Reason: "missing or empty"}
	}
	if len(p.IngredientGroups) == 0 {
		return &SchemaError{Field: "ingredient_groups", Reason: "missing or empty"}
	}
	for _, group := range p.IngredientGroups {
		if len(group.Ingredients) == 0 {
			return &SchemaError{Field: "ingredient_groups", Reason: fmt.Sprintf("component %q has no ingredients", group.Component)}
		}
		for _, ing := range group.Ingredients {
			if strings.TrimSpace(ing.Name) == "" {
				return &SchemaError{Field: "ingredient_groups", Reason: "ingredient with empty name"}
			}
		}
	}
	if len(p.Instructions) == 0 {
		return &SchemaError{Field: "instructions", Reason: "missing or empty"}
	}
	for i, ins := range p.Instructions {
		if ins.StepNumber < 1 {
			return &SchemaError{Field: "instructions", Reason: fmt.Sprintf("instruction %d has no step_number", i)}
		}
	}
	return nil
}

// BindIngredientIDs resolves every canonical ingredient name in rec back to
// its pantry identifier. Import names reported in warnings stay unbound; a
// pantry-resolved name with no identifier is a *ConsistencyError, since that
// indicates resolver/index desynchronization rather than bad input.
func BindIngredientIDs(rec *ValidatedRecipe, idx *pantry.Index, warnings []Warning) (map[string]string, []string, error) {
	imports := make(map[string]struct{})
	for _, w := range warnings {
		if w.Kind == WarnUnresolvedIngredient {
			imports[w.Substituted] = struct{}{}
		}
	}

	ids := make(map[string]string)
	var unbound []string
	for _, group := range rec.IngredientGroups {
		for _, ing := range group.Ingredients {
			if id, ok := idx.IDFor(ing.Name); ok {
				ids[ing.Name] = id
				continue
			}
			if _, ok := imports[ing.Name]; ok {
				unbound = append(unbound, ing.Name)
				continue
			}
			return nil, nil, &ConsistencyError{Name: ing.Name}
		}
	}
	return ids, unbound, nil
}

// Package pipeline turns raw generative-model text into a validated recipe
// record: JSON recovery, closed-vocabulary coercion and pantry-backed
// ingredient resolution.
package pipeline

// RawIngredient is an ingredient as decoded from the model response.
type RawIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// RawIngredientGroup is one recipe component with its ingredients.
type RawIngredientGroup struct {
	Component   string          `json:"component"`
	Ingredients []RawIngredient `json:"ingredients"`
}

// RawInstruction is one instruction step as decoded from the model response.
type RawInstruction struct {
	Phase      string `json:"phase"`
	StepNumber int    `json:"step_number"`
	Text       string `json:"text"`
}

// RawRecipePayload is the decoded-but-unvalidated model output. It exists
// only inside a pipeline invocation.
type RawRecipePayload struct {
	Title            string               `json:"title"`
	Cuisine          string               `json:"cuisine"`
	Diet             string               `json:"diet"`
	Difficulty       string               `json:"difficulty"`
	CleanupFactor    int                  `json:"cleanup_factor"`
	ProteinType      string               `json:"protein_type"`
	MealTypes        []string             `json:"meal_types"`
	IngredientGroups []RawIngredientGroup `json:"ingredient_groups"`
	Instructions     []RawInstruction     `json:"instructions"`
}

// Ingredient is a validated ingredient carrying its canonical pantry name.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// IngredientGroup is a validated recipe component.
type IngredientGroup struct {
	Component   string       `json:"component"`
	Ingredients []Ingredient `json:"ingredients"`
}

// Instruction is a validated instruction step. StepNumber is consumed as
// supplied; the pipeline performs no renumbering.
type Instruction struct {
	Phase      string `json:"phase"`
	StepNumber int    `json:"step_number"`
	Text       string `json:"text"`
}

// ValidatedRecipe is the pipeline output. Every field satisfies its
// invariant: categorical values are in-vocabulary (or a documented fallback),
// cleanup factor is within [1,5], and ingredient names are canonical.
type ValidatedRecipe struct {
	Title            string            `json:"title"`
	Cuisine          string            `json:"cuisine"`
	Diet             string            `json:"diet"`
	Difficulty       string            `json:"difficulty"`
	CleanupFactor    int               `json:"cleanup_factor"`
	ProteinType      string            `json:"protein_type"`
	MealTypes        []string          `json:"meal_types"`
	IngredientGroups []IngredientGroup `json:"ingredient_groups"`
	Instructions     []Instruction     `json:"instructions"`
}

// WarningKind classifies a coercion diagnostic.
type WarningKind string

const (
	// WarnCoercedField marks a value that matched the vocabulary after a
	// deterministic rewrite (casing, keyword heuristic).
	WarnCoercedField WarningKind = "coerced_field"
	// WarnUnresolvedCategory marks a categorical value that fell back to its
	// default.
	WarnUnresolvedCategory WarningKind = "unresolved_category"
	// WarnUnresolvedIngredient marks an ingredient kept as an import name
	// with no pantry identifier behind it.
	WarnUnresolvedIngredient WarningKind = "unresolved_ingredient"
)

// Warning is an advisory diagnostic emitted during assembly. Warnings never
// alter control flow; they are returned alongside the record for
// observability.
type Warning struct {
	Kind        WarningKind `json:"kind"`
	Field       string      `json:"field"`
	Received    string      `json:"received"`
	Substituted string      `json:"substituted"`
}

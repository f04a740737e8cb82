// Package persona turns a chef persona descriptor into the deterministic
// natural-language instruction block consumed by the prompt composer.
package persona

import (
	"embed"
	"fmt"
	"strings"

	"pantry-chef/internal/pkg/common"
)

//go:embed data/chefs.json
var dataFS embed.FS

// FallbackChefID is used when the requested persona does not exist.
const FallbackChefID = "french_classic"

// Range is a numeric min/max constraint on a persona dimension.
type Range struct {
	Min  int    `json:"min"`
	Max  int    `json:"max"`
	Note string `json:"note,omitempty"`
}

// Constraints are the persona's scoring targets. Complexity maps onto the
// three-valued difficulty scale; the rest are 1-5.
type Constraints struct {
	TasteRange      Range `json:"taste_range"`
	SpeedRange      Range `json:"speed_range"`
	ComplexityRange Range `json:"complexity_range"`
	CleanupRange    Range `json:"cleanup_range"`
	RichnessRange   Range `json:"richness_range"`
}

// DietPreference is a prefer/avoid action on a diet id.
type DietPreference struct {
	Action string `json:"action"`
	DietID string `json:"diet_id"`
}

// CookingStyle lists tool and method preferences.
type CookingStyle struct {
	PreferredTools   []string `json:"preferred_tools"`
	AvoidTools       []string `json:"avoid_tools"`
	PreferredMethods []string `json:"preferred_methods"`
}

// IngredientLogic describes the persona's ingredient habits.
type IngredientLogic struct {
	Staples           []string `json:"staples"`
	BannedIngredients []string `json:"banned_ingredients"`
	LowCarbStrategy   string   `json:"low_carb_strategy"`
}

// InstructionStyle controls the voice of generated steps.
type InstructionStyle struct {
	Tone          string `json:"tone"`
	ExamplePhrase string `json:"example_phrase"`
}

// Chef is one persona descriptor.
type Chef struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Archetype        string           `json:"archetype"`
	Description      string           `json:"description"`
	Constraints      Constraints      `json:"constraints"`
	DietPreferences  []DietPreference `json:"diet_preferences"`
	CookingStyle     CookingStyle     `json:"cooking_style"`
	IngredientLogic  IngredientLogic  `json:"ingredient_logic"`
	InstructionStyle InstructionStyle `json:"instruction_style"`
}

// Registry holds the loaded persona set.
type Registry struct {
	chefs map[string]Chef
	order []string
}

// Load parses the embedded persona descriptors.
func Load() (*Registry, error) {
	data, err := dataFS.ReadFile("data/chefs.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read chefs data: %w", err)
	}

	var file struct {
		Chefs []Chef `json:"chefs"`
	}
	if err := common.ParseJSONBytes(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse chefs data: %w", err)
	}
	if len(file.Chefs) == 0 {
		return nil, fmt.Errorf("chefs data is empty")
	}

	r := &Registry{chefs: make(map[string]Chef, len(file.Chefs))}
	for _, chef := range file.Chefs {
		r.chefs[chef.ID] = chef
		r.order = append(r.order, chef.ID)
	}
	return r, nil
}

// Select returns the persona for id, falling back to FallbackChefID, then to
// the first persona in file order.
func (r *Registry) Select(id string) Chef {
	if chef, ok := r.chefs[id]; ok {
		return chef
	}
	if chef, ok := r.chefs[FallbackChefID]; ok {
		return chef
	}
	return r.chefs[r.order[0]]
}

// IDs returns the persona ids in file order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// BuildPrompt renders the persona as a deterministic instruction block.
func BuildPrompt(chef Chef) string {
	c := chef.Constraints
	var sb strings.Builder

	fmt.Fprintf(&sb, "ROLE: %s (%s)\n", chef.Name, chef.Archetype)
	fmt.Fprintf(&sb, "DESCRIPTION: %s\n\n", chef.Description)

	sb.WriteString("PHILOSOPHY & CONSTRAINTS:\n")
	fmt.Fprintf(&sb, "- Taste Priority: %s / 5\n", formatRange(c.TasteRange))
	fmt.Fprintf(&sb, "- Speed Priority: %s / 5\n", formatRange(c.SpeedRange))
	fmt.Fprintf(&sb, "- Complexity Target: %s / 3 (%s)\n", formatRange(c.ComplexityRange), c.ComplexityRange.Note)
	fmt.Fprintf(&sb, "- Cleanup Limit: %s / 5\n", formatRange(c.CleanupRange))
	fmt.Fprintf(&sb, "- Richness Target: %s / 5\n\n", formatRange(c.RichnessRange))

	sb.WriteString("DIET PREFERENCES:\n")
	for _, pref := range chef.DietPreferences {
		fmt.Fprintf(&sb, "- %s %s\n", strings.ToUpper(pref.Action), pref.DietID)
	}
	sb.WriteString("\n")

	sb.WriteString("COOKING STYLE:\n")
	fmt.Fprintf(&sb, "- Preferred Tools: %s\n", strings.Join(chef.CookingStyle.PreferredTools, ", "))
	fmt.Fprintf(&sb, "- Avoid Tools: %s\n", strings.Join(chef.CookingStyle.AvoidTools, ", "))
	fmt.Fprintf(&sb, "- Preferred Methods: %s\n\n", strings.Join(chef.CookingStyle.PreferredMethods, ", "))

	sb.WriteString("INGREDIENT LOGIC:\n")
	fmt.Fprintf(&sb, "- Staples: %s\n", strings.Join(chef.IngredientLogic.Staples, ", "))
	fmt.Fprintf(&sb, "- Banned: %s\n", strings.Join(chef.IngredientLogic.BannedIngredients, ", "))
	fmt.Fprintf(&sb, "- Low Carb Strategy: %s\n\n", chef.IngredientLogic.LowCarbStrategy)

	sb.WriteString("INSTRUCTION STYLE:\n")
	fmt.Fprintf(&sb, "- Tone: %s\n", chef.InstructionStyle.Tone)
	fmt.Fprintf(&sb, "- Example Phrase: %q\n", chef.InstructionStyle.ExamplePhrase)

	return sb.String()
}

func formatRange(r Range) string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

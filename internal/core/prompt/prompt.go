// Package prompt composes the generation prompts from the vocabulary
// tables, the pantry snapshot and a chef persona block.
package prompt

import (
	"fmt"
	"strings"

	"pantry-chef/internal/core/persona"
	"pantry-chef/internal/core/vocab"
)

// schemaExample is the JSON shape the model is asked to return.
const schemaExample = `{
    "title": "Clean, Simple Title",
    "cuisine": "Valid Cuisine",
    "diet": "Valid Diet",
    "difficulty": "Valid Difficulty",
    "cleanup_factor": 1,
    "protein_type": "Valid Specific Protein",
    "meal_types": ["Tag 1", "Tag 2"],
    "ingredient_groups": [
        {
            "component": "Main",
            "ingredients": [
                {"name": "pantry name", "amount": 0.0, "unit": "g"}
            ]
        }
    ],
    "instructions": [
        {"phase": "Prep", "step_number": 1, "text": "Friendly, short step description."},
        {"phase": "Cook", "step_number": 2, "text": "Friendly, short step description."},
        {"phase": "Serve", "step_number": 3, "text": "Friendly, short step description."}
    ]
}`

const componentRules = `COMPONENT ARCHITECTURE RULES:
1. DEFAULT TO SINGLE COMPONENT: Cohesive dishes (Pasta, Pizza, Burgers, Salads, Soups) must be ONE component.
   - Invalid: "Pasta Base", "Pasta Sauce", "Pasta Garnish".
   - Valid: "Spaghetti Carbonara" (Everything included).
2. SPLIT ONLY FOR DISTINCT MODULES: Create separate components ONLY if they are prepared completely independently and combined at the end.
   - Valid (2 Components): "Steak" (Main) + "Fries" (Side).
   - Valid (3 Components): "Schnitzel" (Main) + "Potato Salad" (Side) + "Lingonberry Jam" (Condiment).
3. NO "MICRO-COMPONENTS": Seasonings, simple garnishes, or frying fats are NOT separate components. They belong to the Main.`

const phasingRules = `INSTRUCTION PHASING RULES:
- PREP: Preliminary tasks only. Chopping, measuring, grating, and organizing tools. NO application of heat.
- COOK: The application of heat OR the final assembly logic for cold dishes (salads, etc.). This is where the dish is transformed.
- SERVE: Final presentation and immediate serving tips.`

// Composer renders prompts. It is stateless apart from the immutable
// vocabulary it reads.
type Composer struct {
	vocab *vocab.Store
}

// NewComposer returns a Composer over the given vocabulary.
func NewComposer(v *vocab.Store) *Composer {
	return &Composer{vocab: v}
}

// Generation builds the text-query prompt. pantryJSON is the serialized
// pantry snapshot passed verbatim so the model can use exact names.
func (c *Composer) Generation(query string, pantryJSON string, chef persona.Chef) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "USER REQUEST: %q\n\n", query)
	sb.WriteString(persona.BuildPrompt(chef))
	sb.WriteString("\nTASK: Create a recipe that satisfies the USER REQUEST using only available ingredients.\n\n")
	sb.WriteString(componentRules)
	sb.WriteString("\n\nINGREDIENT RULES:\n1. Use ONLY ingredients from the available list below.\n2. ")
	sb.WriteString(pantryJSON)
	sb.WriteString("\n\n")
	sb.WriteString(phasingRules)
	sb.WriteString("\n\n")
	c.writeJSONRules(&sb)
	sb.WriteString("\nReturn the output as a valid JSON object matching this schema (no markdown formatting):\n")
	sb.WriteString(schemaExample)

	return sb.String()
}

// VideoAnalysis builds the prompt attached to an uploaded cooking video.
func (c *Composer) VideoAnalysis(caption string, pantryJSON string, chef persona.Chef) string {
	var sb strings.Builder

	sb.WriteString("VIDEO ANALYSIS REQUEST.\n")
	fmt.Fprintf(&sb, "Caption: %q\n\n", caption)
	sb.WriteString(persona.BuildPrompt(chef))
	sb.WriteString("\nTASK: Watch this cooking video and extract the recipe. Identify what is being cooked and how.\n")
	sb.WriteString("MATCH ingredients to my available pantry list where possible:\n")
	sb.WriteString(pantryJSON)
	sb.WriteString("\n\nCRITICAL: YOU MUST ESTIMATE AMOUNTS.\n")
	sb.WriteString("- Resulting amounts MUST be specific numbers (e.g. 200.0, not 0).\n")
	sb.WriteString("- If the video doesn't state the amount, USE YOUR CHEF KNOWLEDGE to estimate a reasonable quantity for 2 servings.\n")
	sb.WriteString("- Do not output \"to taste\" or 0 for main ingredients (meat, veg, carbs).\n\n")
	sb.WriteString(componentRules)
	sb.WriteString("\n\n")
	sb.WriteString(phasingRules)
	sb.WriteString("\n\n")
	c.writeJSONRules(&sb)
	sb.WriteString("\nReturn the output as a valid JSON object matching this schema:\n")
	sb.WriteString(schemaExample)

	return sb.String()
}

// WebImport builds the extraction prompt for raw webpage text, including the
// pantry-aware silent-substitution rules.
func (c *Composer) WebImport(rawText string, pantryJSON string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert chef and data engineer.\n\n")
	sb.WriteString("1. EXTRACT: Analyze the following disorganized webpage text and extract the main recipe.\n")
	sb.WriteString("2. ADAPT (CRITICAL): The user has a specific pantry. Compare the recipe's required ingredients against this Pantry List:\n")
	sb.WriteString(pantryJSON)
	sb.WriteString("\n\nRULE: If the recipe calls for an ingredient the user DOES NOT have, but they have a valid, reasonable substitute in the pantry, SILENTLY SWAP it in your output.\n")
	sb.WriteString("- Example: Recipe needs \"Buttermilk\". Pantry has \"Milk\" and \"Lemon\". Swap to \"Milk and Lemon\".\n")
	sb.WriteString("- Example: Recipe needs \"Shallots\". Pantry has \"Red Onion\". Swap to \"Red Onion\".\n")
	sb.WriteString("- If no substitute exists, keep the original ingredient.\n")
	sb.WriteString("- Do NOT mention that a swap occurred. Just output the recipe as if it was written that way.\n\n")
	c.writeJSONRules(&sb)
	sb.WriteString("\n3. FORMAT: Output the result strictly as a valid JSON object matching this schema (no markdown formatting):\n")
	sb.WriteString(schemaExample)
	sb.WriteString("\n\nWEBPAGE TEXT:\n")
	sb.WriteString(rawText)

	return sb.String()
}

func (c *Composer) writeJSONRules(sb *strings.Builder) {
	sb.WriteString("JSON RULES:\n")
	fmt.Fprintf(sb, "1. Valid Cuisines: %s\n", strings.Join(c.vocab.Cuisines, ", "))
	fmt.Fprintf(sb, "2. Valid Diets: %s\n", strings.Join(c.vocab.Diets, ", "))
	fmt.Fprintf(sb, "3. Valid Difficulties: %s\n", strings.Join(c.vocab.Difficulties, ", "))
	fmt.Fprintf(sb, "4. Valid Protein Types (Tier 2): %s\n", strings.Join(c.vocab.ProteinExemplars(), ", "))
	fmt.Fprintf(sb, "5. Valid Meal Types (Select 1-3 that apply): %s\n", strings.Join(c.vocab.MealTags(), ", "))
	sb.WriteString("6. Exact pantry names required.\n")
	fmt.Fprintf(sb, "7. Cleanup Factor: Assign a score 1-5 based on this guide:\n%s\n", c.vocab.CleanupGuide())
}

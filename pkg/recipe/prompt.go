package recipe

import (
	"fmt"
	"kitchen-copilot/entities"
	"strings"
)

const systemPrompt = `You are Kitchen Copilot, a precise recipe generator. Given a list of ingredients and constraints, create realistic recipes a group can cook together.

Respond with a single JSON object and nothing else, using exactly this structure:
{
  "recipes": [
    {
      "title": "Recipe name",
      "description": "One or two sentences",
      "ingredients": [
        {"name": "ingredient name", "amount": "1 cup", "preparation": "diced"}
      ],
      "steps": ["Step 1", "Step 2"],
      "tags": ["quick", "vegetarian"],
      "estimatedTimeMinutes": 30,
      "servings": 4,
      "sensitivityFlags": ["contains_dairy"]
    }
  ]
}
"amount" and "preparation" may be omitted.

Forbidden allergens are hard exclusions: never use them, their derivatives or dishes that traditionally contain them, and do not mention them anywhere in the recipe. Respect every dietary filter. Mark sensitivity flags accurately and be conservative with substitutions.`

// RenderIngredients joins room ingredients as "amount unit name" when both
// amount and unit are known and as the bare name otherwise.
func RenderIngredients(ingredients []*entities.Ingredient) string {
	parts := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing.Amount != nil && *ing.Amount != "" && ing.Unit != nil && *ing.Unit != "" {
			parts = append(parts, fmt.Sprintf("%s %s %s", *ing.Amount, *ing.Unit, ing.Name))
			continue
		}
		parts = append(parts, ing.Name)
	}
	return strings.Join(parts, ", ")
}

func BuildUserPrompt(ingredientList string, constraint *entities.RoomConstraint, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d diverse recipes using these ingredients:\n%s\n\n", count, ingredientList)

	if constraint != nil {
		if len(constraint.Allergies) > 0 {
			fmt.Fprintf(&b, "FORBIDDEN ALLERGENS (must exclude): %s\n", strings.Join(constraint.Allergies, ", "))
		}
		if len(constraint.DietFilters) > 0 {
			fmt.Fprintf(&b, "Dietary filters: %s\n", strings.Join(constraint.DietFilters, ", "))
		}
		if constraint.MealType != nil && *constraint.MealType != "" {
			fmt.Fprintf(&b, "Meal type: %s\n", *constraint.MealType)
		}
		if len(constraint.CookingMethods) > 0 {
			fmt.Fprintf(&b, "Preferred cooking methods: %s\n", strings.Join(constraint.CookingMethods, ", "))
		}
		if constraint.TimeLimitMins != nil && *constraint.TimeLimitMins > 0 {
			fmt.Fprintf(&b, "Time limit: %d minutes\n", *constraint.TimeLimitMins)
		}
		if len(constraint.CuisinePreferences) > 0 {
			fmt.Fprintf(&b, "Cuisine preferences: %s\n", strings.Join(constraint.CuisinePreferences, ", "))
		}
	}

	b.WriteString("\nProvide diverse options with clear instructions. Output JSON only.")
	return b.String()
}

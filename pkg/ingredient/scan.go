package ingredient

import (
	"encoding/json"
	"fmt"
	"kitchen-copilot/domain"
	"strings"
)

const scanSystemPrompt = `You identify food ingredients in photos of fridges, pantries and countertops.
Respond with a single JSON object of the form
{"ingredients": [{"name": string, "amount": string or null, "unit": string or null, "confidence": number between 0 and 1}]}.
Use short generic ingredient names in English. Do not include anything that is not food.`

const scanUserPrompt = "List every ingredient visible in this photo."

type detectedIngredient struct {
	Name       string   `json:"name"`
	Amount     *string  `json:"amount"`
	Unit       *string  `json:"unit"`
	Confidence *float64 `json:"confidence"`
}

// ParseDetectedIngredients turns a vision model reply into ingredient drafts.
// Entries without a name are skipped and confidences are clamped to [0,1].
func ParseDetectedIngredients(content string) ([]domain.AddIngredientRequest, error) {
	var payload struct {
		Ingredients []detectedIngredient `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	drafts := make([]domain.AddIngredientRequest, 0, len(payload.Ingredients))
	for _, item := range payload.Ingredients {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}

		raw := []string{}
		if item.Amount != nil && *item.Amount != "" {
			raw = append(raw, *item.Amount)
		}
		if item.Unit != nil && *item.Unit != "" {
			raw = append(raw, *item.Unit)
		}
		raw = append(raw, name)

		drafts = append(drafts, domain.AddIngredientRequest{
			Name:         name,
			Amount:       emptyToNil(item.Amount),
			Unit:         emptyToNil(item.Unit),
			RawText:      strings.Join(raw, " "),
			DetectedFrom: domain.SourceImage,
			Confidence:   clamp(item.Confidence),
		})
	}
	return drafts, nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func clamp(c *float64) *float64 {
	if c == nil {
		return nil
	}
	v := *c
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return &v
}

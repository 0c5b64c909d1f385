package recipe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"kitchen-copilot/domain"
	"strconv"
	"strings"
)

// Candidate is one recipe proposed by the model, before validation.
type Candidate struct {
	Title                string
	Description          string
	Ingredients          []domain.RecipeIngredient
	Steps                []string
	Tags                 []string
	EstimatedTimeMinutes int
	Servings             int
	SensitivityFlags     []string
}

// flexString accepts strings, numbers and booleans, and null as empty.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "true" || string(data) == "false" {
		*f = flexString(data)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("unsupported value %s", data)
	}
	*f = flexString(data)
	return nil
}

type (
	candidateJSON struct {
		Title                string          `json:"title"`
		Description          flexString      `json:"description"`
		Ingredients          json.RawMessage `json:"ingredients"`
		Steps                []string        `json:"steps"`
		Tags                 []string        `json:"tags"`
		EstimatedTimeMinutes *float64        `json:"estimatedTimeMinutes"`
		Servings             *float64        `json:"servings"`
		SensitivityFlags     []string        `json:"sensitivityFlags"`
	}

	ingredientJSON struct {
		Name        flexString `json:"name"`
		Amount      flexString `json:"amount"`
		Preparation flexString `json:"preparation"`
	}
)

// ParseCandidates decodes a model reply of the form {"recipes": [...]}.
// Items that cannot be decoded are dropped; a reply that is not such an
// object is domain.ErrMalformedResponse.
func ParseCandidates(content string) ([]Candidate, error) {
	var payload struct {
		Recipes []json.RawMessage `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	candidates := make([]Candidate, 0, len(payload.Recipes))
	for _, raw := range payload.Recipes {
		var item candidateJSON
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		candidate := Candidate{
			Title:            strings.TrimSpace(item.Title),
			Description:      strings.TrimSpace(string(item.Description)),
			Ingredients:      parseIngredients(item.Ingredients),
			Steps:            nonBlank(item.Steps),
			Tags:             nonBlank(item.Tags),
			SensitivityFlags: nonBlank(item.SensitivityFlags),
		}
		if item.EstimatedTimeMinutes != nil {
			candidate.EstimatedTimeMinutes = int(*item.EstimatedTimeMinutes)
		}
		if item.Servings != nil {
			candidate.Servings = int(*item.Servings)
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func parseIngredients(raw json.RawMessage) []domain.RecipeIngredient {
	result := []domain.RecipeIngredient{}
	if len(raw) == 0 {
		return result
	}

	var structured []ingredientJSON
	if err := json.Unmarshal(raw, &structured); err == nil {
		for _, ing := range structured {
			name := strings.TrimSpace(string(ing.Name))
			if name == "" {
				continue
			}
			result = append(result, domain.RecipeIngredient{
				Name:        name,
				Amount:      strings.TrimSpace(string(ing.Amount)),
				Preparation: strings.TrimSpace(string(ing.Preparation)),
			})
		}
		return result
	}

	// Some replies list ingredients as plain strings.
	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				result = append(result, domain.RecipeIngredient{Name: name})
			}
		}
	}
	return result
}

func nonBlank(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// ValidateCandidates keeps candidates with a title and at least one step
// whose title, description and ingredient list mention none of allergies,
// truncated to count.
func ValidateCandidates(candidates []Candidate, allergies []string, count int) []Candidate {
	forbidden := make([]string, 0, len(allergies))
	for _, a := range allergies {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			forbidden = append(forbidden, a)
		}
	}

	valid := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if len(valid) == count {
			break
		}
		if c.Title == "" || len(c.Steps) == 0 {
			continue
		}
		if containsAny(searchText(c), forbidden) {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

func searchText(c Candidate) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(c.Ingredients)

	return strings.ToLower(c.Title + " " + c.Description + " " + buf.String())
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

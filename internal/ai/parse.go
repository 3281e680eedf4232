package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// FlexString accepts either a JSON string or a JSON number; the model is
// inconsistent about how it renders price and mileage.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// CarDetails is the structured listing guess returned by the model.
type CarDetails struct {
	Make         string     `json:"make"`
	Model        string     `json:"model"`
	Year         int        `json:"year"`
	Color        string     `json:"color"`
	Price        FlexString `json:"price"`
	Mileage      FlexString `json:"mileage"`
	BodyType     string     `json:"bodyType"`
	FuelType     string     `json:"fuelType"`
	Transmission string     `json:"transmission"`
	Description  string     `json:"description"`
	Confidence   float64    `json:"confidence"`
}

// SearchParams is the reduced guess used by image search.
type SearchParams struct {
	Make       string  `json:"make"`
	BodyType   string  `json:"bodyType"`
	Color      string  `json:"color"`
	Confidence float64 `json:"confidence"`
}

var fenceRe = regexp.MustCompile("```(?:json)?\n?")

var requiredDetailFields = []string{
	"make", "model", "year", "color", "price", "mileage",
	"bodyType", "fuelType", "transmission", "description", "confidence",
}

// ParseCarDetails cleans the raw model output (markdown fences included)
// and rejects it unless every required field is present.
func ParseCarDetails(raw string) (*CarDetails, error) {
	cleaned := CleanModelOutput(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	var missing []string
	for _, f := range requiredDetailFields {
		if _, ok := fields[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("AI response missing required fields: %s", strings.Join(missing, ","))
	}

	var details CarDetails
	if err := json.Unmarshal([]byte(cleaned), &details); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return &details, nil
}

// ParseSearchParams cleans and parses the image-search output.
func ParseSearchParams(raw string) (*SearchParams, error) {
	var params SearchParams
	if err := json.Unmarshal([]byte(CleanModelOutput(raw)), &params); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}
	return &params, nil
}

// CleanModelOutput strips markdown code fences the model wraps JSON in.
func CleanModelOutput(raw string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(raw, ""))
}

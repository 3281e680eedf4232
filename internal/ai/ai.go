package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// AIService holds the Gemini client used for image analysis.
type AIService struct {
	Client *genai.Client
	Model  string
}

// NewAIService initializes the Gemini client.
func NewAIService(ctx context.Context, apiKey string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{Client: client, Model: defaultModel}, nil
}

func (s *AIService) Close() error {
	return s.Client.Close()
}

const extractPrompt = `
Analyze this car image and extract the following information:
1. Make (manufacturer)
2. Model
3. Year (approximately)
4. Color
5. Body type (SUV, Sedan, Hatchback, etc.)
6. Mileage
7. Fuel type (your best guess)
8. Transmission type (your best guess)
9. Price (your best guess)
10. Short Description as to be added to a car listing

Format your response as a clean JSON object with these fields:
{
  "make": "",
  "model": "",
  "year": 0000,
  "color": "",
  "price": "",
  "mileage": "",
  "bodyType": "",
  "fuelType": "",
  "transmission": "",
  "description": "",
  "confidence": 0.0
}

For confidence, provide a value between 0 and 1 representing how confident you are in your overall identification.
Only respond with the JSON object, nothing else.
`

const searchPrompt = `
Analyze this car image and extract the following information for a search query:
1. Make (manufacturer)
2. Body type (SUV, Sedan, Hatchback, etc.)
3. Color

Format your response as a clean JSON object with these fields:
{
  "make": "",
  "bodyType": "",
  "color": "",
  "confidence": 0.0
}

For confidence, provide a value between 0 and 1 representing how confident you are in your overall identification.
Only respond with the JSON object, nothing else.
`

// ExtractCarDetails sends a car photo to Gemini and returns the structured
// listing guess. The model output is an untrusted oracle: it is parsed and
// schema-validated before anything trusts it.
func (s *AIService) ExtractCarDetails(ctx context.Context, image []byte, mimeType string) (*CarDetails, error) {
	text, err := s.generate(ctx, image, mimeType, extractPrompt)
	if err != nil {
		return nil, err
	}
	return ParseCarDetails(text)
}

// ExtractSearchParams sends a car photo to Gemini and returns the
// make/bodyType/color guess used to pre-fill the search form.
func (s *AIService) ExtractSearchParams(ctx context.Context, image []byte, mimeType string) (*SearchParams, error) {
	text, err := s.generate(ctx, image, mimeType, searchPrompt)
	if err != nil {
		return nil, err
	}
	return ParseSearchParams(text)
}

func (s *AIService) generate(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	model := s.Client.GenerativeModel(s.Model)

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: image},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini returned a non-text part")
	}
	return string(text), nil
}

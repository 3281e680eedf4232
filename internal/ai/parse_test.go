package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullDetailsJSON = `{
	"make": "Toyota",
	"model": "Corolla",
	"year": 2021,
	"color": "White",
	"price": "18500",
	"mileage": 42000,
	"bodyType": "Sedan",
	"fuelType": "Petrol",
	"transmission": "Automatic",
	"description": "Well-kept 2021 Toyota Corolla.",
	"confidence": 0.92
}`

func TestParseCarDetails(t *testing.T) {
	details, err := ParseCarDetails(fullDetailsJSON)
	require.NoError(t, err)

	assert.Equal(t, "Toyota", details.Make)
	assert.Equal(t, 2021, details.Year)
	assert.Equal(t, FlexString("18500"), details.Price)
	assert.Equal(t, FlexString("42000"), details.Mileage, "numeric mileage coerces to string")
	assert.Equal(t, 0.92, details.Confidence)
}

func TestParseCarDetailsStripsFences(t *testing.T) {
	fenced := "```json\n" + fullDetailsJSON + "\n```"

	details, err := ParseCarDetails(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Corolla", details.Model)
}

func TestParseCarDetailsMissingFields(t *testing.T) {
	_, err := ParseCarDetails(`{"make": "Toyota", "model": "Corolla"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Contains(t, err.Error(), "confidence")
}

func TestParseCarDetailsGarbage(t *testing.T) {
	_, err := ParseCarDetails("I could not identify the car, sorry!")
	assert.Error(t, err)
}

func TestParseSearchParams(t *testing.T) {
	params, err := ParseSearchParams("```\n{\"make\": \"BMW\", \"bodyType\": \"SUV\", \"color\": \"Black\", \"confidence\": 0.8}\n```")
	require.NoError(t, err)

	assert.Equal(t, "BMW", params.Make)
	assert.Equal(t, "SUV", params.BodyType)
	assert.Equal(t, "Black", params.Color)
	assert.Equal(t, 0.8, params.Confidence)
}

func TestCleanModelOutput(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanModelOutput("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanModelOutput("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanModelOutput(`{"a":1}`))
}

func TestFlexString(t *testing.T) {
	var details CarDetails

	err := details.Price.UnmarshalJSON([]byte(`"12500"`))
	require.NoError(t, err)
	assert.Equal(t, FlexString("12500"), details.Price)

	err = details.Price.UnmarshalJSON([]byte(`12500`))
	require.NoError(t, err)
	assert.Equal(t, FlexString("12500"), details.Price)

	err = details.Price.UnmarshalJSON([]byte(`true`))
	assert.Error(t, err)
}

package handlers

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

	data, mimeType, err := decodeDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png-bytes"), data)
	assert.Equal(t, "image/png", mimeType)
}

func TestDecodeDataURIDefaultsMime(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("x"))

	_, mimeType, err := decodeDataURI("data:;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mimeType)
}

func TestDecodeDataURIRejectsPlainStrings(t *testing.T) {
	_, _, err := decodeDataURI("https://example.com/car.jpg")
	assert.Error(t, err)
}

func TestDecodeDataURIRejectsBadBase64(t *testing.T) {
	_, _, err := decodeDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.Error(t, err)
}

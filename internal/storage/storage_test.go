package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned folder URL",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/cars/abc123/image-0.jpg",
			"cars/abc123/image-0",
		},
		{
			"no version segment",
			"https://res.cloudinary.com/demo/image/upload/cars/abc123/image-1.png",
			"cars/abc123/image-1",
		},
		{
			"no folder",
			"https://res.cloudinary.com/demo/image/upload/v1/lonely.webp",
			"lonely",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PublicIDFromURL(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPublicIDFromURLRejectsForeignURLs(t *testing.T) {
	_, err := PublicIDFromURL("https://example.com/images/car.jpg")
	assert.Error(t, err)
}

func TestPublicIDFromURLRejectsMalformed(t *testing.T) {
	_, err := PublicIDFromURL("https://res.cloudinary.com/demo/image/nope.jpg")
	assert.Error(t, err)
}

func TestSignIsDeterministic(t *testing.T) {
	s := New("demo", "key", "secret", "cars")

	first := s.sign("cars/abc/image-0", "1712345678")
	second := s.sign("cars/abc/image-0", "1712345678")
	assert.Equal(t, first, second)
	assert.Len(t, first, 40, "hex-encoded SHA1")

	other := s.sign("cars/abc/image-1", "1712345678")
	assert.NotEqual(t, first, other)
}

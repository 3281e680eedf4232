// Package storage uploads car images to Cloudinary via its signed REST
// API and deletes them again when a listing is removed.
package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Service signs and sends Cloudinary upload/destroy requests.
type Service struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string

	HTTPClient *http.Client
}

func New(cloudName, apiKey, apiSecret, folder string) *Service {
	return &Service{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		Folder:     folder,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Service) endpoint(action string) string {
	return "https://api.cloudinary.com/v1_1/" + s.CloudName + "/image/" + action
}

// sign produces the SHA1 request signature Cloudinary expects over the
// public_id + timestamp pair.
func (s *Service) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(payload)))
}

// UploadImage stores raw image bytes under publicID (scoped to the
// configured folder) and returns the public URL.
func (s *Service) UploadImage(ctx context.Context, image []byte, mimeType, publicID string) (string, error) {
	if s.CloudName == "" || s.APIKey == "" || s.APISecret == "" {
		return "", errors.New("object storage is not configured")
	}

	finalID := publicID
	if s.Folder != "" {
		finalID = s.Folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("file", "data:"+mimeType+";base64,"+base64.StdEncoding.EncodeToString(image))
	form.Add("api_key", s.APIKey)
	form.Add("public_id", finalID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(finalID, timestamp))

	body, err := s.post(ctx, s.endpoint("upload"), form)
	if err != nil {
		return "", err
	}

	var uploadRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &uploadRes); err != nil {
		return "", fmt.Errorf("invalid upload response: %w", err)
	}
	if uploadRes.Error.Message != "" {
		return "", fmt.Errorf("upload rejected: %s", uploadRes.Error.Message)
	}

	publicURL := uploadRes.SecureURL
	if publicURL == "" {
		publicURL = uploadRes.URL
	}
	if publicURL == "" {
		return "", errors.New("upload returned no URL")
	}
	return publicURL, nil
}

// DeleteImage removes a previously uploaded image given its public URL.
func (s *Service) DeleteImage(ctx context.Context, imageURL string) error {
	publicID, err := PublicIDFromURL(imageURL)
	if err != nil {
		return err
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", s.APIKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(publicID, timestamp))

	body, err := s.post(ctx, s.endpoint("destroy"), form)
	if err != nil {
		return err
	}

	var destroyRes struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(body, &destroyRes); err != nil {
		return fmt.Errorf("invalid destroy response: %w", err)
	}
	if destroyRes.Result != "ok" && destroyRes.Result != "not found" {
		return fmt.Errorf("destroy failed: %s", destroyRes.Result)
	}
	return nil
}

func (s *Service) post(ctx context.Context, endpoint string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("storage request failed with status %d: %s", res.StatusCode, body)
	}
	return body, nil
}

// PublicIDFromURL extracts the folder-qualified public ID from a
// Cloudinary delivery URL:
// https://res.cloudinary.com/<cloud>/image/upload/v<version>/<folder>/<id>.<ext>
func PublicIDFromURL(imageURL string) (string, error) {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return "", fmt.Errorf("not a storage URL: %s", imageURL)
	}
	_, after, found := strings.Cut(imageURL, "/upload/")
	if !found || after == "" {
		return "", fmt.Errorf("malformed storage URL: %s", imageURL)
	}

	parts := strings.Split(after, "/")
	// Drop the version segment if present.
	if len(parts) > 1 && strings.HasPrefix(parts[0], "v") {
		parts = parts[1:]
	}
	id := strings.Join(parts, "/")
	if dot := strings.LastIndex(id, "."); dot > 0 {
		id = id[:dot]
	}
	if id == "" {
		return "", fmt.Errorf("malformed storage URL: %s", imageURL)
	}
	return id, nil
}

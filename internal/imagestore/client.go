// Package imagestore uploads and releases campground images in an
// external binary-object storage service.
package imagestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.cloudinary.com/v1_1/campgrounds"
	folder         = "campgrounds"
)

// Image is a stored object: the opaque identifier used for later
// deletion plus the retrievable URL.
type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
}

// Client talks to the image storage API.
type Client struct {
	httpClient *http.Client
	apiKey     string

	// Overridable URL for testing.
	baseURL string
}

// NewClient creates an image store client with the given API key.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("image store API key is required")
	}
	return &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
	}, nil
}

// Upload stores an image and returns its public ID and URL. The public
// ID is generated client-side so a retried upload never collides.
func (c *Client) Upload(filename string, r io.Reader) (*Image, error) {
	publicID := fmt.Sprintf("%s/%s", folder, uuid.NewString())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("public_id", publicID); err != nil {
		return nil, fmt.Errorf("writing public_id field: %w", err)
	}
	if err := mw.WriteField("api_key", c.apiKey); err != nil {
		return nil, fmt.Errorf("writing api_key field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copying file data: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/image/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var img Image
	if err := json.NewDecoder(resp.Body).Decode(&img); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if img.PublicID == "" || img.URL == "" {
		return nil, fmt.Errorf("incomplete upload response")
	}

	return &img, nil
}

// Destroy releases a stored image by its public ID.
func (c *Client) Destroy(publicID string) error {
	if publicID == "" {
		return fmt.Errorf("public ID is required")
	}

	form := url.Values{
		"public_id": {publicID},
		"api_key":   {c.apiKey},
	}
	resp, err := c.httpClient.Post(
		c.baseURL+"/image/destroy",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

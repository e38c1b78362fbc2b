// Package classifier talks to the external leaf-disease classification
// service. Uploads are normalized here — decoded, downscaled to the
// model's input size and re-encoded as JPEG — so the service only ever
// sees one format.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	_ "github.com/chai2010/webp" // webp leaf photos are common from phones
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// maxEdge matches the ViT model's input resolution; anything larger is
// wasted upload bandwidth.
const maxEdge = 384

type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

func NewClient(url string, log *logrus.Logger) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type predictResponse struct {
	PredictedClass string `json:"predicted_class"`
	Error          string `json:"error"`
}

// Predict sends a normalized image to the classifier and returns the
// predicted label.
func (c *Client) Predict(ctx context.Context, imageData io.Reader) (string, error) {
	normalized, err := Normalize(imageData)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "leaf.jpg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(normalized); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("classifier request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.WithField("status", resp.StatusCode).Warn("classifier error")
		return "", fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode classifier response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("classifier error: %s", result.Error)
	}

	return result.PredictedClass, nil
}

// Normalize decodes a jpeg, png or webp image, scales it down so the
// longest edge is at most maxEdge, and re-encodes it as JPEG.
func Normalize(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("unsupported or corrupt image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxEdge || h > maxEdge {
		scale := float64(maxEdge) / float64(w)
		if h > w {
			scale = float64(maxEdge) / float64(h)
		}
		dw := int(float64(w) * scale)
		dh := int(float64(h) * scale)

		dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

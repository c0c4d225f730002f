package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OCRClient reads text from images through the Azure Computer Vision OCR
// endpoint. The remote call is bounded by the http client timeout.
type OCRClient struct {
	endpoint string
	key      string
	http     *http.Client
}

func NewOCRClient(endpoint, key string) *OCRClient {
	return &OCRClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *OCRClient) Configured() bool {
	return c.endpoint != "" && c.key != ""
}

// ExtractText submits the image and assembles the recognized text region by
// region, line by line.
func (c *OCRClient) ExtractText(ctx context.Context, image []byte) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("OCR service not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/vision/v3.2/ocr", bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OCR request failed: status %d: %s", resp.StatusCode, body)
	}

	var analysis struct {
		Regions []struct {
			Lines []struct {
				Words []struct {
					Text string `json:"text"`
				} `json:"words"`
			} `json:"lines"`
		} `json:"regions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}

	var text strings.Builder
	for _, region := range analysis.Regions {
		for _, line := range region.Lines {
			words := make([]string, 0, len(line.Words))
			for _, w := range line.Words {
				words = append(words, w.Text)
			}
			text.WriteString(strings.Join(words, " "))
			text.WriteString("\n")
		}
	}
	return strings.TrimSpace(text.String()), nil
}

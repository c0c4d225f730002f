package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client synthesizes SSML into MP3 audio through the Azure Speech service.
type Client struct {
	key    string
	region string
	http   *http.Client
}

func NewClient(key, region string) *Client {
	return &Client{
		key:    key,
		region: region,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Configured() bool { return c.key != "" && c.region != "" }

// Synthesize returns MP3 bytes for the given SSML document.
func (c *Client) Synthesize(ctx context.Context, ssml string) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("speech service not configured")
	}

	url := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", c.region)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(ssml)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "audio-16khz-128kbitrate-mono-mp3")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("speech synthesis failed: status %d: %s", resp.StatusCode, msg)
	}
	return io.ReadAll(resp.Body)
}

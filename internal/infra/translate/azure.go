package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const endpoint = "https://api.cognitive.microsofttranslator.com/translate?api-version=3.0"

// Client wraps the Azure Translator v3 REST API. Callers are expected to
// fall back to the untranslated text on any error.
type Client struct {
	key    string
	region string
	http   *http.Client
}

func NewClient(key, region string) *Client {
	return &Client{
		key:    key,
		region: region,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Configured() bool { return c.key != "" }

// Translate returns text translated into the target language.
func (c *Client) Translate(ctx context.Context, text, toLang string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("translation service not configured")
	}

	body, err := json.Marshal([]map[string]string{{"Text": text}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		endpoint+"&to="+url.QueryEscape(toLang), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Ocp-Apim-Subscription-Region", c.region)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation request failed: status %d: %s", resp.StatusCode, msg)
	}

	var out []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if len(out) == 0 || len(out[0].Translations) == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	return out[0].Translations[0].Text, nil
}

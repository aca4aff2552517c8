package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Translator turns Vietnamese display text into English. Implementations must
// be safe for concurrent use; callers treat failures as non-fatal and keep
// the original text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// NewTranslator returns the Google endpoint translator when enabled, the
// no-op passthrough otherwise.
func NewTranslator(enabled bool) Translator {
	if enabled {
		return &googleTranslator{
			client: &http.Client{Timeout: 10 * time.Second},
		}
	}
	return noopTranslator{}
}

type noopTranslator struct{}

func (noopTranslator) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}

// googleTranslator calls the unauthenticated gtx endpoint. Good enough for
// product names at import volume; rate limits surface as errors and the
// caller keeps the Vietnamese text.
type googleTranslator struct {
	client *http.Client
}

const translateEndpoint = "https://translate.googleapis.com/translate_a/single"

func (gt *googleTranslator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "vi")
	params.Set("tl", "en")
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, translateEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build translation request: %w", err)
	}

	resp, err := gt.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation endpoint returned %s", resp.Status)
	}

	// The endpoint answers [[[translated, original, ...], ...], ...]; the
	// translation is split across one entry per sentence.
	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode translation response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", fmt.Errorf("failed to decode translation sentences: %w", err)
	}

	var out strings.Builder
	for _, sentence := range sentences {
		if len(sentence) == 0 {
			continue
		}
		var fragment string
		if err := json.Unmarshal(sentence[0], &fragment); err != nil {
			continue
		}
		out.WriteString(fragment)
	}

	translated := strings.TrimSpace(out.String())
	if translated == "" {
		return "", fmt.Errorf("translation response carried no text")
	}
	return translated, nil
}

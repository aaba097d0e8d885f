// Package suggest calls the generative-AI collaborator that maps a
// free-text query to a subset of catalog items. Every failure mode
// (missing credential, network, bad status, malformed payload) comes
// back as an error; callers treat any error as "no suggestion" and
// fall back to plain substring filtering.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/guonaihong/gout"
)

var (
	ErrNoCredential = errors.New("suggest: no api key configured")
	ErrBadPayload   = errors.New("suggest: malformed model response")
)

// Item is the reduced product tuple handed to the model.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Suggestion is the matched variant of the collaborator result: the
// ids that matched the query plus a free-text bundle note. The
// unavailable variant is an error from Suggest.
type Suggestion struct {
	MatchedIDs       []string `json:"matchedIds"`
	BundleSuggestion string   `json:"bundleSuggestion"`
}

type Client struct {
	apiKey   string
	model    string
	endpoint string
}

func NewClient(apiKey, model, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: strings.TrimSuffix(endpoint, "/"),
	}
}

// generateContent request/response wire types, trimmed to the fields
// this client touches.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest asks the model which catalog items match the query. The call
// blocks until it resolves or fails; there is no retry.
func (c *Client) Suggest(ctx context.Context, query string, items []Item) (*Suggestion, error) {
	if c.apiKey == "" {
		return nil, ErrNoCredential
	}

	listing, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(`The user is looking for: %q.
From the following JSON list of products, identify which ones best match the intent.
Also, suggest a 'Smart Bundle' of 2-3 items if they might want to cook something specific.

Available Products: %s

Respond ONLY in JSON format with two keys:
- "matchedIds": Array of string IDs
- "bundleSuggestion": A string explaining why these are good together (e.g. "Making Pasta? Here is what you need.")`,
		query, listing)

	req := generateRequest{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, c.model)
	var resp generateResponse
	code := 0
	err = gout.POST(url).
		WithContext(ctx).
		SetQuery(gout.H{"key": c.apiKey}).
		SetJSON(req).
		BindJSON(&resp).
		Code(&code).
		Do()
	if err != nil {
		return nil, fmt.Errorf("suggest: request failed: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("suggest: unexpected status %d", code)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrBadPayload
	}

	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, ErrBadPayload
	}
	var out Suggestion
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	if out.MatchedIDs == nil {
		out.MatchedIDs = []string{}
	}
	return &out, nil
}

// Package insight asks a Gemini model whether a chart screenshot shows the
// trader's configured entry trigger.
//
// It is a thin collaborator: a failed or nonsensical analysis is reported to
// the caller and never touches the ledger.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model used when the Analyst does not name one.
const DefaultModel = "gemini-2.5-flash"

// Verdict is the structured outcome of one trigger analysis.
type Verdict struct {
	Trigger    bool   `json:"trigger"`              // the configured setup is present
	Direction  string `json:"direction,omitempty"`  // "call" or "put" when Trigger is true
	Confidence int    `json:"confidence"`           // 0-100
	Rationale  string `json:"rationale"`            // short explanation
}

// Analyst runs trigger analyses against a Gemini model.
type Analyst struct {
	ModelName string
	client    *genai.Client
}

// NewAnalyst creates an analyst on the given client.
func NewAnalyst(client *genai.Client) *Analyst {
	return &Analyst{ModelName: DefaultModel, client: client}
}

const promptTemplate = `You are assisting a discretionary day trader.
The trader enters a position only when the following setup ("trigger") is visible on the chart:

%s

Look at the attached chart screenshot and answer in JSON only, with this shape:
{"trigger": bool, "direction": "call"|"put"|"", "confidence": 0-100, "rationale": "one short sentence"}

Be conservative: when in doubt, answer trigger=false.`

// Analyze sends the chart image and the trader's trigger description to the
// model and returns its verdict.
func (a *Analyst) Analyze(ctx context.Context, image []byte, mimeType, trigger string) (*Verdict, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("no image data")
	}
	if strings.TrimSpace(trigger) == "" {
		return nil, fmt.Errorf("no trigger description")
	}

	chat, err := a.client.Chats.Create(ctx, a.ModelName, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating analysis chat: %w", err)
	}

	resp, err := chat.Send(ctx,
		&genai.Part{Text: fmt.Sprintf(promptTemplate, trigger)},
		&genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
	)
	if err != nil {
		return nil, fmt.Errorf("asking the model: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from the model")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	return parseVerdict(text)
}

// parseVerdict decodes the model's JSON answer, tolerating a markdown code
// fence around it.
func parseVerdict(text string) (*Verdict, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var v Verdict
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &v); err != nil {
		return nil, fmt.Errorf("unreadable verdict %q: %w", text, err)
	}
	if v.Confidence < 0 || v.Confidence > 100 {
		return nil, fmt.Errorf("verdict confidence %d out of range", v.Confidence)
	}
	return &v, nil
}

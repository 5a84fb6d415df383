// Package advisor asks a language model for a site-specific review of a
// pullback calculation and renders the answer for the web client.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"HDDPull/internal/calc/hdd"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const systemPrompt = "You are a senior horizontal directional drilling engineer reviewing a PE pipe pullback design " +
	"calculated with the ASTM F1962 simplified method. Answer in concise GitHub-flavored markdown with three " +
	"sections: Site risks, Reaming and drilling fluid, Rig and pipe. Do not restate the inputs."

const maxTokens = 1500

var ErrNotConfigured = errors.New("ANTHROPIC_API_KEY not configured")

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

type Advisor struct {
	messages AnthropicMessager
	model    anthropic.Model
}

type Advice struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// New returns ErrNotConfigured when apiKey is blank. An empty model selects
// the default.
func New(apiKey, model string) (*Advisor, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	m := anthropic.ModelClaudeSonnet4_20250514
	if model = strings.TrimSpace(model); model != "" {
		m = anthropic.Model(model)
	}
	return &Advisor{messages: newAnthropicClient(apiKey), model: m}, nil
}

func (a *Advisor) Advise(ctx context.Context, req hdd.Request, res hdd.CalculationResult) (Advice, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   maxTokens,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(req, res)))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return Advice{}, fmt.Errorf("advisor request: %w", err)
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Advice{}, errors.New("advisor returned no text")
	}
	html, err := Render(text)
	if err != nil {
		return Advice{}, err
	}
	return Advice{Markdown: text, HTML: html}, nil
}

// Prompt describes one calculation in plain text.
func Prompt(req hdd.Request, res hdd.CalculationResult) string {
	p, b := req.Pipe, req.Path
	crossing := b.CrossingType
	if crossing == "" {
		crossing = hdd.CrossingStandard
	}
	soil := string(b.SoilType)
	if soil == "" {
		soil = "unspecified"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Crossing: %s, soil: %s (friction %.2f).\n", crossing, soil, b.SoilFriction)
	fmt.Fprintf(&sb, "Pipe: %s OD %.0f mm SDR %g, yield %.1f MPa.\n", p.Material, p.OuterDiameterMM, p.SDR, p.YieldStrengthMPa)
	fmt.Fprintf(&sb, "Bore: %.0f m long, %.1f m deep, entry %.1f deg, exit %.1f deg, mud %.0f kg/m3 at %.0f cP.\n",
		b.TotalLengthM, b.DepthM, b.EntryAngleDeg, b.ExitAngleDeg, b.MudDensityKgM3, b.ViscosityCP)
	fmt.Fprintf(&sb, "Pullback force: %.1f kN, tensile stress %.2f MPa.\n", res.EstimatedPullForceKN, res.TensileStressMPa)
	fmt.Fprintf(&sb, "Safety factors: tensile %.2f, collapse %.2f (safe: %t).\n", res.SafetyFactorTensile, res.SafetyFactorCollapse, res.IsSafe)
	fmt.Fprintf(&sb, "Pipe weight in mud: %.2f kg/m. Bend radius %.0f m.\n", res.PipeWeightMudKgM, res.BendingRadiusM)
	fmt.Fprintf(&sb, "Equipment: borehole %.0f mm, rig pullback %.1f t.\n", res.RecommendedBoreholeDiameterMM, res.RequiredRigPullbackT)
	if len(res.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range res.Warnings {
			sb.WriteString("- " + w + "\n")
		}
	}
	sb.WriteString("List the main site-specific risks, the reaming and mud procedure you would use, and whether the rig and pipe are fit for this pull.")
	return sb.String()
}

// Render converts markdown to HTML.
func Render(markdown string) (string, error) {
	var out strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &out); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return out.String(), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/liliang-cn/agribot/internal/config"
	"github.com/liliang-cn/agribot/internal/domain"
)

// Inline attachment types sent with a turn
const (
	MIMEAudioWAV  = "audio/wav"
	MIMEImageJPEG = "image/jpeg"
)

// ErrNoAudio indicates a speech response without an audio payload
var ErrNoAudio = errors.New("no audio in speech response")

// Attachment is an inline media part of a prompt
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Prompt is one request to the remote assistant
type Prompt struct {
	System      string
	Text        string
	Attachments []Attachment
	Grounded    bool     // enable web search grounding
	Temperature *float32 // nil keeps the model default
}

// Reply is the assistant's answer
type Reply struct {
	Text    string
	Sources []domain.Source
}

// Assistant is the remote generative backend
type Assistant interface {
	Generate(ctx context.Context, p *Prompt) (*Reply, error)
	// Synthesize returns raw PCM16LE mono 24 kHz speech for text
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

var groundingPattern = regexp.MustCompile(`(?i)market|price|scheme|news|government|weather|today|current`)

// NeedsGrounding reports whether a query asks about fresh, searchable facts
func NeedsGrounding(text string) bool {
	return groundingPattern.MatchString(text)
}

// SystemDirective returns the assistant persona for a reply language
func SystemDirective(lang string) string {
	return fmt.Sprintf(`You are AgriBot, a helpful, friendly, and expert agricultural assistant.
Your goal is to help farmers with crop management, disease identification, weather insights, government schemes, and market prices.

Current User Language Preference: %[1]s.
ALWAYS reply in the language: %[1]s.

If the user asks about market prices or weather trends and you can provide data, try to format a small JSON snippet at the end of your response for visualization, but primarily provide a helpful text summary.

If the user sends an image of a plant, diagnose the disease or identify the crop and provide treatment or care recommendations.

Keep responses concise, practical, and easy to understand for a farmer. Avoid overly technical jargon unless necessary.`, lang)
}

var markdownMarks = strings.NewReplacer("*", "", "#", "", "`", "", "_", "")

// StripMarkdown removes the emphasis and heading marks that TTS would read aloud
func StripMarkdown(text string) string {
	return markdownMarks.Replace(text)
}

// GeminiAssistant implements Assistant on the Gemini API
type GeminiAssistant struct {
	client   *genai.Client
	model    string
	ttsModel string
	voice    string
	logger   *zap.Logger
}

// NewGeminiAssistant creates a Gemini client from config
func NewGeminiAssistant(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiAssistant, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key is not set", domain.ErrInvalidRequest)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiAssistant{
		client:   client,
		model:    cfg.Model,
		ttsModel: cfg.TTSModel,
		voice:    cfg.Voice,
		logger:   logger,
	}, nil
}

// Generate sends one user turn and returns the text with grounding sources
func (a *GeminiAssistant) Generate(ctx context.Context, p *Prompt) (*Reply, error) {
	var parts []*genai.Part
	for _, att := range p.Attachments {
		parts = append(parts, genai.NewPartFromBytes(att.Data, att.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(p.Text))

	cfg := &genai.GenerateContentConfig{Temperature: p.Temperature}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.Grounded {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return &Reply{Text: resp.Text(), Sources: groundingSources(resp)}, nil
}

// Synthesize renders text with the configured prebuilt voice
func (a *GeminiAssistant) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: a.voice},
			},
		},
	}

	resp, err := a.client.Models.GenerateContent(ctx, a.ttsModel,
		[]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate speech: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoAudio
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, nil
		}
	}
	return nil, ErrNoAudio
}

func groundingSources(resp *genai.GenerateContentResponse) []domain.Source {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []domain.Source
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Source"
		}
		sources = append(sources, domain.Source{URI: chunk.Web.URI, Title: title})
	}
	return sources
}

package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a message
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Kind selects which optional message fields are meaningful
type Kind string

const (
	KindText  Kind = "text"
	KindChart Kind = "chart"
	KindError Kind = "error"
)

// Message represents one entry of a conversation transcript
type Message struct {
	ID        string       `json:"id"`
	SessionID string       `json:"session_id"`
	Sender    Sender       `json:"sender"`
	Text      string       `json:"text"`
	Kind      Kind         `json:"type"`
	Image     string       `json:"image,omitempty"`      // base64 still image
	AudioData string       `json:"audio_data,omitempty"` // base64 PCM, attached on first playback
	Sources   []Source     `json:"sources,omitempty"`
	ChartData []ChartPoint `json:"chart_data,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Source represents a grounding citation
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ChartPoint is one labelled value of a chart series
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func newMessage(sender Sender, kind Kind, text string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Text:      text,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

// NewTextMessage builds a plain text message
func NewTextMessage(sender Sender, text string, sources []Source) *Message {
	m := newMessage(sender, KindText, text)
	m.Sources = sources
	return m
}

// NewChartMessage builds a bot message carrying a chart series
func NewChartMessage(text string, data []ChartPoint, sources []Source) *Message {
	m := newMessage(SenderBot, KindChart, text)
	m.ChartData = data
	m.Sources = sources
	return m
}

// NewErrorMessage builds a bot apology shown in place of a reply
func NewErrorMessage(text string) *Message {
	return newMessage(SenderBot, KindError, text)
}

// Validate checks that the optional fields agree with the message kind
func (m *Message) Validate() error {
	switch m.Kind {
	case KindText:
		if len(m.ChartData) > 0 {
			return fmt.Errorf("%w: text message with chart data", ErrInvalidRequest)
		}
	case KindChart:
		if m.Sender != SenderBot {
			return fmt.Errorf("%w: chart message from %s", ErrInvalidRequest, m.Sender)
		}
		if len(m.ChartData) == 0 {
			return fmt.Errorf("%w: chart message without data", ErrInvalidRequest)
		}
	case KindError:
		if len(m.ChartData) > 0 || len(m.Sources) > 0 {
			return fmt.Errorf("%w: error message with payload", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedKind, m.Kind)
	}
	return nil
}

// ChatRequest is the request to send a chat turn
type ChatRequest struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"` // base64 or data URI, JPEG
	Audio string `json:"audio,omitempty"` // base64 or data URI, WAV
}

// ChatResponse is the pair of messages a turn appended
type ChatResponse struct {
	SessionID string   `json:"session_id"`
	Question  *Message `json:"question"`
	Answer    *Message `json:"answer"`
}

// MarketResult is the outcome of a market data fetch
type MarketResult struct {
	Text    string       `json:"text"`
	Data    []ChartPoint `json:"data"`
	Sources []Source     `json:"sources,omitempty"`
}

// Stats represents system statistics
type Stats struct {
	TotalSessions      int  `json:"total_sessions"`
	TotalChats         int  `json:"total_chats"`
	TotalConsultations int  `json:"total_consultations"`
	PendingRequests    int  `json:"pending_consultations"`
	KnowledgeEntries   int  `json:"knowledge_entries"`
	Online             bool `json:"online"`
}

package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/connectivity"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
	"github.com/liliang-cn/agribot/internal/knowledge"
)

// Turn is one farmer query as seen by the resolver
type Turn struct {
	Text     string
	Image    []byte // JPEG
	Voice    []byte // WAV
	Language string
	// History is the transcript so far. Each turn is answered on its own;
	// history is carried for callers and not sent to the assistant.
	History []*domain.Message
}

// Speaker reads a freshly appended reply aloud
type Speaker interface {
	Toggle(ctx context.Context, sessionID, messageID, lang string) (SpeechState, error)
}

// ChatService answers farmer queries online through the assistant or
// offline from the local knowledge base
type ChatService struct {
	assistant   Assistant
	checker     connectivity.Checker
	kb          *knowledge.Base
	sessions    *SessionService
	speaker     Speaker
	temperature float32
	logger      *zap.Logger
}

// NewChatService creates a new chat service. A nil assistant makes every
// query resolve from the knowledge base.
func NewChatService(
	assistant Assistant,
	checker connectivity.Checker,
	kb *knowledge.Base,
	sessions *SessionService,
	speaker Speaker,
	temperature float32,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		assistant:   assistant,
		checker:     checker,
		kb:          kb,
		sessions:    sessions,
		speaker:     speaker,
		temperature: temperature,
		logger:      logger,
	}
}

func (s *ChatService) online() bool {
	return s.assistant != nil && s.checker.Online()
}

// Resolve produces the bot message answering a turn. It never fails:
// assistant errors become an error message or an offline answer.
func (s *ChatService) Resolve(ctx context.Context, turn Turn) *domain.Message {
	lang := turn.Language
	if lang == "" {
		lang = i18n.DefaultLanguage
	}

	if !s.online() {
		return s.resolveOffline(turn, lang)
	}

	temperature := s.temperature
	prompt := &Prompt{
		System:      SystemDirective(lang),
		Text:        turn.Text,
		Grounded:    NeedsGrounding(turn.Text),
		Temperature: &temperature,
	}
	if len(turn.Voice) > 0 {
		prompt.Attachments = append(prompt.Attachments, Attachment{MIMEType: MIMEAudioWAV, Data: turn.Voice})
	}
	if len(turn.Image) > 0 {
		prompt.Attachments = append(prompt.Attachments, Attachment{MIMEType: MIMEImageJPEG, Data: turn.Image})
	}

	reply, err := s.assistant.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("Assistant call failed", zap.Error(err))
		// Connectivity is re-read after the failure
		if !s.checker.Online() {
			return domain.NewTextMessage(domain.SenderBot, s.kb.Lookup(turn.Text, lang), nil)
		}
		return domain.NewErrorMessage(i18n.T(i18n.KeyAssistantError, lang))
	}

	text := reply.Text
	if strings.TrimSpace(text) == "" {
		text = i18n.T(i18n.KeyAssistantEmpty, lang)
	}
	return domain.NewTextMessage(domain.SenderBot, text, reply.Sources)
}

func (s *ChatService) resolveOffline(turn Turn, lang string) *domain.Message {
	var text string
	switch {
	case len(turn.Voice) > 0:
		text = i18n.T(i18n.KeyOfflineVoice, lang)
	case len(turn.Image) > 0:
		text = i18n.T(i18n.KeyOfflineImage, lang)
	default:
		text = s.kb.Lookup(turn.Text, lang)
	}
	return domain.NewTextMessage(domain.SenderBot, text, nil)
}

// Send runs a full chat turn for a session: the farmer's message is
// appended, resolved, and the reply appended and read aloud unless muted.
func (s *ChatService) Send(ctx context.Context, sessionID string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	image, err := decodeMedia(req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: image: %v", domain.ErrInvalidRequest, err)
	}
	voice, err := decodeMedia(req.Audio)
	if err != nil {
		return nil, fmt.Errorf("%w: audio: %v", domain.ErrInvalidRequest, err)
	}
	if strings.TrimSpace(req.Text) == "" && len(image) == 0 && len(voice) == 0 {
		return nil, fmt.Errorf("%w: empty message", domain.ErrInvalidRequest)
	}

	st, err := s.sessions.SetView(ctx, sessionID, domain.ViewChat)
	if err != nil {
		return nil, err
	}

	history, err := s.sessions.Messages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	userText := req.Text
	if len(voice) > 0 {
		userText = i18n.T(i18n.KeyVoiceLabel, st.Language)
	}
	question := domain.NewTextMessage(domain.SenderUser, userText, nil)
	if len(image) > 0 {
		question.Image = base64.StdEncoding.EncodeToString(image)
	}
	if err := s.sessions.Append(sessionID, question); err != nil {
		return nil, err
	}

	answer := s.Resolve(ctx, Turn{
		Text:     req.Text,
		Image:    image,
		Voice:    voice,
		Language: st.Language,
		History:  history,
	})
	if err := s.sessions.Append(sessionID, answer); err != nil {
		return nil, err
	}

	autoSpeak(ctx, s.speaker, s.logger, st, answer)

	return &domain.ChatResponse{SessionID: sessionID, Question: question, Answer: answer}, nil
}

// autoSpeak starts reading a reply in the background unless the session is muted
func autoSpeak(ctx context.Context, speaker Speaker, logger *zap.Logger, st *domain.AppState, message *domain.Message) {
	if speaker == nil || st.Muted || message.Text == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if _, err := speaker.Toggle(ctx, st.SessionID, message.ID, st.Language); err != nil {
			logger.Warn("Auto speak failed", zap.String("session_id", st.SessionID), zap.Error(err))
		}
	}()
}

// decodeMedia accepts raw base64 or a data URI
func decodeMedia(payload string) ([]byte, error) {
	if payload == "" {
		return nil, nil
	}
	if strings.HasPrefix(payload, "data:") {
		i := strings.Index(payload, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data uri")
		}
		payload = payload[i+1:]
	}
	return base64.StdEncoding.DecodeString(payload)
}

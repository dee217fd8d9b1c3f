package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/audio"
	"github.com/liliang-cn/agribot/internal/clock"
	"github.com/liliang-cn/agribot/internal/connectivity"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
	"github.com/liliang-cn/agribot/internal/realtime"
	"github.com/liliang-cn/agribot/internal/repository"
)

// SpeechState is the playback state of a session
type SpeechState string

const (
	SpeechIdle                  SpeechState = "idle"
	SpeechPreparing             SpeechState = "preparing"
	SpeechPlayingRemoteClip     SpeechState = "playing_remote_clip"
	SpeechPlayingLocalSynthesis SpeechState = "playing_local_synthesis"
)

// SpeechStatus reports what a session is currently sounding
type SpeechStatus struct {
	State     SpeechState `json:"state"`
	MessageID string      `json:"message_id,omitempty"`
}

// AudioOutput plays decoded clips
type AudioOutput interface {
	Play(sessionID, messageID string, clip *audio.Clip) error
	Suspend(sessionID string)
}

// Synthesizer speaks text on the farmer's device
type Synthesizer interface {
	Speak(sessionID, messageID, text, locale string, voice *audio.Voice) error
	Cancel(sessionID string)
}

// VoiceLister reports the on-device voices of a session
type VoiceLister interface {
	Voices(sessionID string) []audio.Voice
}

type playback struct {
	messageID string
	state     SpeechState
	timer     clock.Timer
}

// SpeechService reads messages aloud. Each session has at most one current
// playback; only the current playback may move the session back to idle.
type SpeechService struct {
	sessions  *repository.SessionRepository
	assistant Assistant
	checker   connectivity.Checker
	output    AudioOutput
	synth     Synthesizer
	voices    VoiceLister
	clock     clock.Clock
	publisher Publisher
	logger    *zap.Logger

	mu      sync.Mutex
	current map[string]*playback
}

// SpeechDeps groups the collaborators of a SpeechService
type SpeechDeps struct {
	Sessions  *repository.SessionRepository
	Assistant Assistant // nil disables remote synthesis
	Checker   connectivity.Checker
	Output    AudioOutput
	Synth     Synthesizer
	Voices    VoiceLister
	Clock     clock.Clock
	Publisher Publisher
	Logger    *zap.Logger
}

// NewSpeechService creates a new speech service
func NewSpeechService(deps SpeechDeps) *SpeechService {
	s := &SpeechService{
		sessions:  deps.Sessions,
		assistant: deps.Assistant,
		checker:   deps.Checker,
		output:    deps.Output,
		synth:     deps.Synth,
		voices:    deps.Voices,
		clock:     deps.Clock,
		publisher: deps.Publisher,
		logger:    deps.Logger,
		current:   make(map[string]*playback),
	}
	if s.clock == nil {
		s.clock = clock.Real()
	}
	if s.publisher == nil {
		s.publisher = nopPublisher{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Status returns the session's playback status
func (s *SpeechService) Status(sessionID string) SpeechStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.current[sessionID]; ok {
		return SpeechStatus{State: p.state, MessageID: p.messageID}
	}
	return SpeechStatus{State: SpeechIdle}
}

// Toggle starts reading a message, or stops it if it is the one sounding
func (s *SpeechService) Toggle(ctx context.Context, sessionID, messageID, lang string) (SpeechState, error) {
	s.mu.Lock()
	if cur, ok := s.current[sessionID]; ok && cur.messageID == messageID {
		s.stopLocked(sessionID, cur)
		s.mu.Unlock()
		s.silence(sessionID)
		return SpeechIdle, nil
	}
	s.mu.Unlock()

	message, err := s.sessions.GetMessage(sessionID, messageID)
	if err != nil {
		return SpeechIdle, err
	}
	if message == nil {
		return SpeechIdle, fmt.Errorf("%w: message %s", domain.ErrNotFound, messageID)
	}

	p := &playback{messageID: messageID, state: SpeechPreparing}
	s.mu.Lock()
	if prev, ok := s.current[sessionID]; ok {
		// Overlapping playback is not serialized; the newer one takes over
		s.stopLocked(sessionID, prev)
	}
	s.current[sessionID] = p
	s.mu.Unlock()
	s.publishState(sessionID, SpeechStatus{State: SpeechPreparing, MessageID: messageID})

	if message.AudioData != "" {
		return s.playClip(sessionID, p, message.AudioData), nil
	}

	if s.assistant != nil && s.checker.Online() {
		encoded, err := s.synthesize(ctx, sessionID, message)
		if err == nil {
			return s.playClip(sessionID, p, encoded), nil
		}
		s.logger.Warn("Remote speech failed, falling back to local synthesis",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	return s.speakLocal(sessionID, p, message.Text, lang), nil
}

// synthesize renders a message remotely and caches the clip on it
func (s *SpeechService) synthesize(ctx context.Context, sessionID string, message *domain.Message) (string, error) {
	raw, err := s.assistant.Synthesize(ctx, StripMarkdown(message.Text))
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", ErrNoAudio
	}
	stored, err := s.sessions.AttachAudio(sessionID, message.ID, base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		return "", fmt.Errorf("failed to cache audio: %w", err)
	}
	return stored, nil
}

func (s *SpeechService) playClip(sessionID string, p *playback, encoded string) SpeechState {
	clip, err := audio.DecodePCM(encoded)
	if err != nil {
		s.logger.Warn("Undecodable audio clip", zap.String("session_id", sessionID),
			zap.String("message_id", p.messageID), zap.Error(err))
		s.Finished(sessionID, p.messageID, true)
		return SpeechIdle
	}

	if !s.advance(sessionID, p, SpeechPlayingRemoteClip) {
		return SpeechIdle
	}
	if s.output == nil {
		s.Finished(sessionID, p.messageID, true)
		return SpeechIdle
	}
	if err := s.output.Play(sessionID, p.messageID, clip); err != nil {
		s.logger.Warn("Audio output failed", zap.String("session_id", sessionID), zap.Error(err))
		s.Finished(sessionID, p.messageID, true)
		return SpeechIdle
	}

	// The browser normally reports the end; the timer covers a silent client
	timer := s.clock.AfterFunc(clip.Duration(), func() {
		s.finish(sessionID, p)
	})
	s.mu.Lock()
	if s.current[sessionID] == p {
		p.timer = timer
	} else {
		timer.Stop()
	}
	s.mu.Unlock()
	return SpeechPlayingRemoteClip
}

func (s *SpeechService) speakLocal(sessionID string, p *playback, text, lang string) SpeechState {
	if s.synth == nil {
		s.Finished(sessionID, p.messageID, true)
		return SpeechIdle
	}

	var voice *audio.Voice
	if s.voices != nil {
		if v, ok := audio.SelectVoice(s.voices.Voices(sessionID), lang); ok {
			voice = &v
		}
	}

	if !s.advance(sessionID, p, SpeechPlayingLocalSynthesis) {
		return SpeechIdle
	}
	s.synth.Cancel(sessionID)
	if err := s.synth.Speak(sessionID, p.messageID, text, i18n.Locale(lang), voice); err != nil {
		s.logger.Warn("Local synthesis failed", zap.String("session_id", sessionID), zap.Error(err))
		s.Finished(sessionID, p.messageID, true)
		return SpeechIdle
	}
	return SpeechPlayingLocalSynthesis
}

// advance moves p to state if it is still the session's current playback
func (s *SpeechService) advance(sessionID string, p *playback, state SpeechState) bool {
	s.mu.Lock()
	if s.current[sessionID] != p {
		s.mu.Unlock()
		return false
	}
	p.state = state
	s.mu.Unlock()
	s.publishState(sessionID, SpeechStatus{State: state, MessageID: p.messageID})
	return true
}

// Finished reports that playback of messageID ended or failed. It is a
// no-op unless that message is the one currently sounding.
func (s *SpeechService) Finished(sessionID, messageID string, failed bool) {
	s.mu.Lock()
	cur, ok := s.current[sessionID]
	if !ok || cur.messageID != messageID {
		s.mu.Unlock()
		return
	}
	s.stopLocked(sessionID, cur)
	s.mu.Unlock()

	if failed {
		s.logger.Debug("Playback failed", zap.String("session_id", sessionID), zap.String("message_id", messageID))
	}
	s.publishState(sessionID, SpeechStatus{State: SpeechIdle})
}

func (s *SpeechService) finish(sessionID string, p *playback) {
	s.mu.Lock()
	if s.current[sessionID] != p {
		s.mu.Unlock()
		return
	}
	s.stopLocked(sessionID, p)
	s.mu.Unlock()
	s.publishState(sessionID, SpeechStatus{State: SpeechIdle})
}

// stopLocked must be called with mu held
func (s *SpeechService) stopLocked(sessionID string, p *playback) {
	if p.timer != nil {
		p.timer.Stop()
	}
	delete(s.current, sessionID)
}

// Stop silences whatever the session is sounding, e.g. when it is muted
func (s *SpeechService) Stop(sessionID string) {
	s.mu.Lock()
	if p, ok := s.current[sessionID]; ok {
		s.stopLocked(sessionID, p)
	}
	s.mu.Unlock()
	s.silence(sessionID)
}

func (s *SpeechService) silence(sessionID string) {
	if s.output != nil {
		s.output.Suspend(sessionID)
	}
	if s.synth != nil {
		s.synth.Cancel(sessionID)
	}
	s.publishState(sessionID, SpeechStatus{State: SpeechIdle})
}

// Forget drops a session's playback
func (s *SpeechService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.current[sessionID]; ok {
		s.stopLocked(sessionID, p)
	}
}

func (s *SpeechService) publishState(sessionID string, status SpeechStatus) {
	s.publisher.Publish(sessionID, realtime.EventSpeechState, status)
}

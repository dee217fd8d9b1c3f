package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/audio"
)

// AudioPlayPayload carries a decoded clip back to the browser as PCM16LE
type AudioPlayPayload struct {
	MessageID  string `json:"message_id"`
	Audio      string `json:"audio"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`
	DurationMs int64  `json:"duration_ms"`
}

// SpeakPayload asks the browser to synthesize text on-device
type SpeakPayload struct {
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
	Locale    string `json:"locale"`
	Voice     string `json:"voice,omitempty"`
}

// PlaybackPayload identifies the message an inbound playback event is about
type PlaybackPayload struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

// Player drives playback in the browser through the hub. It also keeps the
// voice list each browser reported.
type Player struct {
	hub    *Hub
	logger *zap.Logger

	mu     sync.RWMutex
	voices map[string][]audio.Voice
}

// NewPlayer creates a player on hub
func NewPlayer(hub *Hub, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{hub: hub, logger: logger, voices: make(map[string][]audio.Voice)}
}

// Play pushes a clip to the session
func (p *Player) Play(sessionID, messageID string, clip *audio.Clip) error {
	p.hub.Publish(sessionID, EventAudioPlay, AudioPlayPayload{
		MessageID:  messageID,
		Audio:      audio.EncodePCM(audio.Quantize(clip.Samples)),
		SampleRate: clip.SampleRate,
		Channels:   clip.Channels,
		DurationMs: clip.Duration().Milliseconds(),
	})
	return nil
}

// Suspend stops whatever clip the session is playing
func (p *Player) Suspend(sessionID string) {
	p.hub.Publish(sessionID, EventAudioSuspend, nil)
}

// Speak asks the session's browser to synthesize text
func (p *Player) Speak(sessionID, messageID, text, locale string, voice *audio.Voice) error {
	payload := SpeakPayload{MessageID: messageID, Text: text, Locale: locale}
	if voice != nil {
		payload.Voice = voice.Name
	}
	p.hub.Publish(sessionID, EventSpeechSpeak, payload)
	return nil
}

// Cancel stops on-device synthesis
func (p *Player) Cancel(sessionID string) {
	p.hub.Publish(sessionID, EventSpeechCancel, nil)
}

// Voices returns the voices last reported by the session's browser
func (p *Player) Voices(sessionID string) []audio.Voice {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.voices[sessionID]
}

// SetVoices records the voice list of a session
func (p *Player) SetVoices(sessionID string, voices []audio.Voice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.voices[sessionID] = voices
}

// Forget drops what the player knows about a session
func (p *Player) Forget(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.voices, sessionID)
}

// Attach routes the browser's playback events. finished is called when a
// clip or synthesis for messageID ended, failed reports a playback error.
func (p *Player) Attach(finished func(sessionID, messageID string, failed bool)) {
	p.hub.Handle(func(sessionID string, in Incoming) {
		switch in.Event {
		case EventSpeechVoices:
			var voices []audio.Voice
			if err := json.Unmarshal(in.Payload, &voices); err != nil {
				p.logger.Debug("Bad voice list", zap.String("session_id", sessionID), zap.Error(err))
				return
			}
			p.SetVoices(sessionID, voices)

		case EventAudioEnded, EventSpeechEnded, EventSpeechError:
			var pb PlaybackPayload
			if err := json.Unmarshal(in.Payload, &pb); err != nil {
				p.logger.Debug("Bad playback event", zap.String("session_id", sessionID), zap.Error(err))
				return
			}
			failed := in.Event == EventSpeechError
			if failed {
				p.logger.Warn("Speech synthesis failed in browser",
					zap.String("session_id", sessionID), zap.String("error", pb.Error))
			}
			finished(sessionID, pb.MessageID, failed)
		}
	})
}

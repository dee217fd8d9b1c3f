package service

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/liliang-cn/agribot/internal/audio"
	"github.com/liliang-cn/agribot/internal/clock"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/knowledge"
	"github.com/liliang-cn/agribot/internal/repository"
	"github.com/liliang-cn/agribot/internal/state"
)

type fakeAssistant struct {
	mu        sync.Mutex
	reply     *Reply
	err       error
	speech    []byte
	speechErr error
	prompts   []*Prompt
	spoken    []string
	onCall    func()
}

func (a *fakeAssistant) Generate(ctx context.Context, p *Prompt) (*Reply, error) {
	a.mu.Lock()
	a.prompts = append(a.prompts, p)
	onCall := a.onCall
	a.mu.Unlock()
	if onCall != nil {
		onCall()
	}
	if a.err != nil {
		return nil, a.err
	}
	if a.reply == nil {
		return &Reply{}, nil
	}
	return a.reply, nil
}

func (a *fakeAssistant) Synthesize(ctx context.Context, text string) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.spoken = append(a.spoken, text)
	return a.speech, a.speechErr
}

func (a *fakeAssistant) calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.prompts)
}

func (a *fakeAssistant) lastPrompt() *Prompt {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.prompts) == 0 {
		return nil
	}
	return a.prompts[len(a.prompts)-1]
}

type fakeChecker struct {
	online atomic.Bool
}

func newChecker(online bool) *fakeChecker {
	c := &fakeChecker{}
	c.online.Store(online)
	return c
}

func (c *fakeChecker) Online() bool { return c.online.Load() }

type published struct {
	sessionID string
	event     string
	payload   any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(sessionID, event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{sessionID, event, payload})
}

func (p *recordingPublisher) count(event string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.event == event {
			n++
		}
	}
	return n
}

type fakeOutput struct {
	mu        sync.Mutex
	played    []string
	suspended int
	err       error
}

func (o *fakeOutput) Play(sessionID, messageID string, clip *audio.Clip) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.played = append(o.played, messageID)
	return o.err
}

func (o *fakeOutput) Suspend(sessionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.suspended++
}

type spoken struct {
	messageID, text, locale string
	voice                   *audio.Voice
}

type fakeSynth struct {
	mu       sync.Mutex
	spoken   []spoken
	canceled int
}

func (s *fakeSynth) Speak(sessionID, messageID, text, locale string, voice *audio.Voice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, spoken{messageID, text, locale, voice})
	return nil
}

func (s *fakeSynth) Cancel(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canceled++
}

type fakeVoices []audio.Voice

func (v fakeVoices) Voices(string) []audio.Voice { return v }

type toggleCall struct {
	sessionID, messageID, lang string
}

type fakeSpeaker struct {
	calls chan toggleCall
}

func newFakeSpeaker() *fakeSpeaker {
	return &fakeSpeaker{calls: make(chan toggleCall, 8)}
}

func (s *fakeSpeaker) Toggle(ctx context.Context, sessionID, messageID, lang string) (SpeechState, error) {
	s.calls <- toggleCall{sessionID, messageID, lang}
	return SpeechPlayingLocalSynthesis, nil
}

func (s *fakeSpeaker) expect(t *testing.T) toggleCall {
	t.Helper()
	select {
	case c := <-s.calls:
		return c
	case <-time.After(time.Second):
		t.Fatal("expected the reply to be spoken")
		return toggleCall{}
	}
}

func (s *fakeSpeaker) expectNone(t *testing.T) {
	t.Helper()
	select {
	case c := <-s.calls:
		t.Fatalf("unexpected speech for %s", c.messageID)
	case <-time.After(50 * time.Millisecond):
	}
}

type testEnv struct {
	db            *repository.DB
	sessionRepo   *repository.SessionRepository
	consultRepo   *repository.ConsultationRepository
	prefs         *repository.PreferenceRepository
	store         state.Store
	publisher     *recordingPublisher
	assistant     *fakeAssistant
	checker       *fakeChecker
	clock         *clock.Fake
	speaker       *fakeSpeaker
	sessions      *SessionService
	chat          *ChatService
	market        *MarketService
	consultations *ConsultationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "agribot.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		db:          db,
		sessionRepo: repository.NewSessionRepository(db),
		consultRepo: repository.NewConsultationRepository(db),
		prefs:       repository.NewPreferenceRepository(db),
		store:       state.NewMemoryStore(),
		publisher:   &recordingPublisher{},
		assistant:   &fakeAssistant{},
		checker:     newChecker(true),
		clock:       clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		speaker:     newFakeSpeaker(),
	}
	env.sessions = NewSessionService(env.store, env.sessionRepo, env.publisher, nil)
	env.chat = NewChatService(env.assistant, env.checker, knowledge.Default(), env.sessions, env.speaker, 0.7, nil)
	env.market = NewMarketService(env.assistant, env.checker, env.sessions, env.speaker, nil)
	env.consultations = NewConsultationService(env.consultRepo, env.clock, env.publisher, 4*time.Second, 4*time.Second, nil)
	return env
}

// login starts a session with the language already chosen
func (e *testEnv) login(t *testing.T, name, location, lang string) *domain.AppState {
	t.Helper()
	ctx := context.Background()
	st, err := e.sessions.Login(ctx, &domain.LoginRequest{Name: name, Location: location})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	st, err = e.sessions.SetLanguage(ctx, st.SessionID, lang)
	if err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	return st
}

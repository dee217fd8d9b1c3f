package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/realtime"
)

func TestLoginAndGreeting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	st, err := env.sessions.Login(ctx, &domain.LoginRequest{Name: "  Sunita ", Location: "Nagpur"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !st.LoggedIn || st.LanguageSelected || st.User.Name != "Sunita" || st.View != domain.ViewDashboard {
		t.Errorf("unexpected state %+v", st)
	}

	if _, err := env.sessions.SetLanguage(ctx, st.SessionID, "hi"); err != nil {
		t.Fatal(err)
	}
	messages, _ := env.sessions.Messages(ctx, st.SessionID)
	if len(messages) != 1 || messages[0].Sender != domain.SenderBot {
		t.Fatalf("expected one greeting, got %v", messages)
	}
	if want := "नमस्ते Sunita! एग्रीबॉट डैशबोर्ड में आपका स्वागत है। शुरू करने के लिए कोई उपकरण चुनें।"; messages[0].Text != want {
		t.Errorf("greeting = %q", messages[0].Text)
	}

	// changing language later does not greet again
	if _, err := env.sessions.SetLanguage(ctx, st.SessionID, "mr"); err != nil {
		t.Fatal(err)
	}
	messages, _ = env.sessions.Messages(ctx, st.SessionID)
	if len(messages) != 1 {
		t.Errorf("got %d messages", len(messages))
	}
	if env.publisher.count(realtime.EventMessage) != 1 {
		t.Error("greeting should be pushed once")
	}
}

func TestLoginRequiresName(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.sessions.Login(context.Background(), &domain.LoginRequest{Name: " "})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("err = %v", err)
	}
}

func TestSessionPreferences(t *testing.T) {
	env := newTestEnv(t)
	st := env.login(t, "Sunita", "", "en")
	ctx := context.Background()

	if _, err := env.sessions.SetLanguage(ctx, st.SessionID, "fr"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("unsupported language: err = %v", err)
	}
	if _, err := env.sessions.SetView(ctx, st.SessionID, "map"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("unknown view: err = %v", err)
	}

	if _, err := env.sessions.SetView(ctx, st.SessionID, domain.ViewSettings); err != nil {
		t.Fatal(err)
	}
	if _, err := env.sessions.SetMuted(ctx, st.SessionID, true); err != nil {
		t.Fatal(err)
	}
	got, _ := env.sessions.State(ctx, st.SessionID)
	if got.View != domain.ViewSettings || !got.Muted || got.Language != "en" {
		t.Errorf("state = %+v", got)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	st := env.login(t, "Sunita", "", "en")
	ctx := context.Background()

	var forgotten []string
	env.sessions.OnLogout(func(id string) { forgotten = append(forgotten, id) })

	if err := env.sessions.Logout(ctx, st.SessionID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(forgotten) != 1 || forgotten[0] != st.SessionID {
		t.Errorf("hooks saw %v", forgotten)
	}
	if _, err := env.sessions.State(ctx, st.SessionID); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("state after logout: err = %v", err)
	}
	if _, err := env.sessions.Messages(ctx, st.SessionID); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("messages after logout: err = %v", err)
	}
	if err := env.sessions.Logout(ctx, st.SessionID); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("second logout: err = %v", err)
	}
}

func TestMuteRunsHooks(t *testing.T) {
	env := newTestEnv(t)
	st := env.login(t, "Sunita", "", "en")
	ctx := context.Background()

	var muted []string
	env.sessions.OnMute(func(id string) { muted = append(muted, id) })

	if _, err := env.sessions.SetMuted(ctx, st.SessionID, false); err != nil {
		t.Fatal(err)
	}
	if len(muted) != 0 {
		t.Errorf("unmuting ran hooks: %v", muted)
	}
	if _, err := env.sessions.SetMuted(ctx, st.SessionID, true); err != nil {
		t.Fatal(err)
	}
	if len(muted) != 1 || muted[0] != st.SessionID {
		t.Errorf("hooks saw %v", muted)
	}
	if _, err := env.sessions.SetMuted(ctx, "unknown", true); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("unknown session: err = %v", err)
	}
	if len(muted) != 1 {
		t.Errorf("failed mute ran hooks: %v", muted)
	}
}

func TestMuteSilencesPlayback(t *testing.T) {
	rig := newSpeechRig(t)
	rig.sessions.OnMute(rig.speech.Stop)
	m := rig.reply(t, "cached", oneSecond)

	rig.toggle(t, m.ID)
	if _, err := rig.sessions.SetMuted(context.Background(), rig.session, true); err != nil {
		t.Fatal(err)
	}
	if st := rig.speech.Status(rig.session); st.State != SpeechIdle {
		t.Errorf("status after mute = %+v", st)
	}
	if rig.output.suspended != 1 || rig.synth.canceled != 1 {
		t.Errorf("suspended=%d canceled=%d", rig.output.suspended, rig.synth.canceled)
	}
}

func TestAppendLogsTouchFailure(t *testing.T) {
	env := newTestEnv(t)
	core, logs := observer.New(zapcore.WarnLevel)
	sessions := NewSessionService(env.store, env.sessionRepo, env.publisher, zap.New(core))
	st, err := sessions.Login(context.Background(), &domain.LoginRequest{Name: "Sunita"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := env.db.Exec(`CREATE TRIGGER sessions_frozen BEFORE UPDATE ON sessions
		BEGIN SELECT RAISE(ABORT, 'sessions are frozen'); END`); err != nil {
		t.Fatal(err)
	}

	if err := sessions.Append(st.SessionID, domain.NewTextMessage(domain.SenderUser, "hello", nil)); err != nil {
		t.Fatalf("Append should succeed when only the timestamp fails: %v", err)
	}
	entries := logs.FilterMessage("Failed to touch session").All()
	if len(entries) != 1 {
		t.Fatalf("warnings = %v", logs.All())
	}
	if entries[0].ContextMap()["session_id"] != st.SessionID {
		t.Errorf("fields = %v", entries[0].ContextMap())
	}
}

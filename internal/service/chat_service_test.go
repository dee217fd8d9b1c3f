package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
	"github.com/liliang-cn/agribot/internal/knowledge"
)

func TestResolveOffline(t *testing.T) {
	env := newTestEnv(t)
	env.checker.online.Store(false)
	ctx := context.Background()

	wheat := knowledge.Default().Lookup("wheat", "hi")

	tests := []struct {
		name string
		turn Turn
		want string
	}{
		{"keyword", Turn{Text: "Tell me about Wheat", Language: "hi"}, wheat},
		{"voice", Turn{Text: "wheat", Voice: []byte("RIFF"), Language: "hi"}, i18n.T(i18n.KeyOfflineVoice, "hi")},
		{"image", Turn{Text: "wheat", Image: []byte{0xff, 0xd8}, Language: "en"}, i18n.T(i18n.KeyOfflineImage, "en")},
		{"no match", Turn{Text: "hello", Language: "mr"}, i18n.T(i18n.KeyOfflineFallback, "mr")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := env.chat.Resolve(ctx, tt.turn)
			if msg.Kind != domain.KindText || msg.Sender != domain.SenderBot {
				t.Errorf("kind=%s sender=%s", msg.Kind, msg.Sender)
			}
			if msg.Text != tt.want {
				t.Errorf("text = %q, want %q", msg.Text, tt.want)
			}
			if len(msg.Sources) != 0 {
				t.Error("offline answers carry no sources")
			}
		})
	}

	if env.assistant.calls() != 0 {
		t.Error("assistant must not be called offline")
	}
}

func TestResolveOnlineBuildsPrompt(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{
		Text:    "Onion is ₹1800/quintal",
		Sources: []domain.Source{{URI: "https://agmarknet.gov.in", Title: "Agmarknet"}},
	}

	msg := env.chat.Resolve(context.Background(), Turn{
		Text:     "What is the onion PRICE today?",
		Image:    []byte{1},
		Voice:    []byte{2},
		Language: "hi",
	})

	if msg.Kind != domain.KindText || msg.Text != "Onion is ₹1800/quintal" {
		t.Errorf("unexpected reply %+v", msg)
	}
	if len(msg.Sources) != 1 || msg.Sources[0].Title != "Agmarknet" {
		t.Errorf("sources = %v", msg.Sources)
	}

	p := env.assistant.lastPrompt()
	if !p.Grounded {
		t.Error("price question should be grounded")
	}
	if p.Temperature == nil || *p.Temperature != 0.7 {
		t.Errorf("temperature = %v", p.Temperature)
	}
	if !strings.Contains(p.System, "ALWAYS reply in the language: hi") {
		t.Error("system directive should pin the reply language")
	}
	if len(p.Attachments) != 2 || p.Attachments[0].MIMEType != MIMEAudioWAV || p.Attachments[1].MIMEType != MIMEImageJPEG {
		t.Errorf("attachments = %+v", p.Attachments)
	}
}

func TestResolveOnlineWithoutGrounding(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{Text: "Use neem oil."}

	env.chat.Resolve(context.Background(), Turn{Text: "aphids on my cotton", Language: "en"})

	if env.assistant.lastPrompt().Grounded {
		t.Error("plain agronomy question should not be grounded")
	}
}

func TestResolveEmptyReply(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{Text: "  "}

	msg := env.chat.Resolve(context.Background(), Turn{Text: "hi", Language: "en"})
	if msg.Kind != domain.KindText || msg.Text != i18n.T(i18n.KeyAssistantEmpty, "en") {
		t.Errorf("unexpected reply %+v", msg)
	}
}

func TestResolveFailure(t *testing.T) {
	t.Run("still online", func(t *testing.T) {
		env := newTestEnv(t)
		env.assistant.err = errors.New("503")

		msg := env.chat.Resolve(context.Background(), Turn{Text: "wheat", Language: "en"})
		if msg.Kind != domain.KindError || msg.Text != i18n.T(i18n.KeyAssistantError, "en") {
			t.Errorf("unexpected reply %+v", msg)
		}
	})

	t.Run("went offline", func(t *testing.T) {
		env := newTestEnv(t)
		env.assistant.err = errors.New("network unreachable")
		env.assistant.onCall = func() { env.checker.online.Store(false) }

		msg := env.chat.Resolve(context.Background(), Turn{Text: "wheat", Language: "en"})
		if msg.Kind != domain.KindText || msg.Text != knowledge.Default().Lookup("wheat", "en") {
			t.Errorf("expected offline wheat answer, got %+v", msg)
		}
	})
}

func TestSendAppendsTurnAndSpeaks(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{Text: "Sow in November."}
	st := env.login(t, "Asha", "Nashik", "en")
	ctx := context.Background()

	resp, err := env.chat.Send(ctx, st.SessionID, &domain.ChatRequest{Text: "When to sow wheat?"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	messages, _ := env.sessions.Messages(ctx, st.SessionID)
	// greeting, question, answer
	if len(messages) != 3 {
		t.Fatalf("got %d messages", len(messages))
	}
	if messages[1].ID != resp.Question.ID || messages[1].Sender != domain.SenderUser {
		t.Error("question should be appended before the answer")
	}
	if messages[2].ID != resp.Answer.ID || messages[2].Text != "Sow in November." {
		t.Errorf("unexpected answer %+v", messages[2])
	}

	call := env.speaker.expect(t)
	if call.messageID != resp.Answer.ID || call.lang != "en" {
		t.Errorf("spoke %+v", call)
	}

	cur, _ := env.sessions.State(ctx, st.SessionID)
	if cur.View != domain.ViewChat {
		t.Errorf("view = %s, want chat", cur.View)
	}
}

func TestSendMutedDoesNotSpeak(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{Text: "ok"}
	st := env.login(t, "Asha", "", "en")
	ctx := context.Background()

	if _, err := env.sessions.SetMuted(ctx, st.SessionID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := env.chat.Send(ctx, st.SessionID, &domain.ChatRequest{Text: "hello"}); err != nil {
		t.Fatal(err)
	}
	env.speaker.expectNone(t)
}

func TestSendVoiceTurnUsesLabel(t *testing.T) {
	env := newTestEnv(t)
	env.checker.online.Store(false)
	st := env.login(t, "Asha", "", "mr")

	wav := "data:audio/wav;base64," + base64.StdEncoding.EncodeToString([]byte("RIFF...."))
	resp, err := env.chat.Send(context.Background(), st.SessionID, &domain.ChatRequest{Audio: wav})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if resp.Question.Text != i18n.T(i18n.KeyVoiceLabel, "mr") {
		t.Errorf("question text = %q", resp.Question.Text)
	}
	if resp.Answer.Text != i18n.T(i18n.KeyOfflineVoice, "mr") {
		t.Errorf("answer text = %q", resp.Answer.Text)
	}
}

func TestSendRejectsEmptyTurn(t *testing.T) {
	env := newTestEnv(t)
	st := env.login(t, "Asha", "", "en")

	_, err := env.chat.Send(context.Background(), st.SessionID, &domain.ChatRequest{Text: "   "})
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
	_, err = env.chat.Send(context.Background(), "nope", &domain.ChatRequest{Text: "hi"})
	if !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestNeedsGrounding(t *testing.T) {
	for _, q := range []string{"market rates", "Current weather", "new SCHEME for farmers", "news today"} {
		if !NeedsGrounding(q) {
			t.Errorf("NeedsGrounding(%q) = false", q)
		}
	}
	if NeedsGrounding("how to prune mango trees") {
		t.Error("pruning question should not need grounding")
	}
}

func TestStripMarkdown(t *testing.T) {
	if got := StripMarkdown("## **Wheat** `tip` _now_"); got != " Wheat tip now" {
		t.Errorf("StripMarkdown = %q", got)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/liliang-cn/agribot/internal/audio"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/realtime"
)

type speechRig struct {
	*testEnv
	speech  *SpeechService
	output  *fakeOutput
	synth   *fakeSynth
	session string
}

func newSpeechRig(t *testing.T, voices ...audio.Voice) *speechRig {
	t.Helper()
	env := newTestEnv(t)
	rig := &speechRig{testEnv: env, output: &fakeOutput{}, synth: &fakeSynth{}}
	rig.speech = NewSpeechService(SpeechDeps{
		Sessions:  env.sessionRepo,
		Assistant: env.assistant,
		Checker:   env.checker,
		Output:    rig.output,
		Synth:     rig.synth,
		Voices:    fakeVoices(voices),
		Clock:     env.clock,
		Publisher: env.publisher,
	})
	rig.session = env.login(t, "Meena", "Anand", "hi").SessionID
	return rig
}

func (r *speechRig) reply(t *testing.T, text, audioData string) *domain.Message {
	t.Helper()
	m := domain.NewTextMessage(domain.SenderBot, text, nil)
	m.AudioData = audioData
	if err := r.sessions.Append(r.session, m); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return m
}

func (r *speechRig) toggle(t *testing.T, messageID string) SpeechState {
	t.Helper()
	state, err := r.speech.Toggle(context.Background(), r.session, messageID, "hi")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	return state
}

// oneSecond is a silent clip of exactly one second
var oneSecond = audio.EncodePCM(make([]int16, audio.SampleRate))

func TestSpeechPlaysCachedClipUntilItEnds(t *testing.T) {
	rig := newSpeechRig(t)
	m := rig.reply(t, "cached", oneSecond)

	if got := rig.toggle(t, m.ID); got != SpeechPlayingRemoteClip {
		t.Fatalf("state = %s", got)
	}
	if len(rig.output.played) != 1 || rig.output.played[0] != m.ID {
		t.Errorf("played = %v", rig.output.played)
	}
	if rig.assistant.calls() != 0 || len(rig.assistant.spoken) != 0 {
		t.Error("cached clip must not be synthesized again")
	}

	rig.clock.Advance(999 * time.Millisecond)
	if st := rig.speech.Status(rig.session); st.State != SpeechPlayingRemoteClip || st.MessageID != m.ID {
		t.Errorf("status before end = %+v", st)
	}
	rig.clock.Advance(time.Millisecond)
	if st := rig.speech.Status(rig.session); st.State != SpeechIdle {
		t.Errorf("status after end = %+v", st)
	}
	if rig.publisher.count(realtime.EventSpeechState) < 3 {
		t.Error("each transition should be published")
	}
}

func TestSpeechToggleStops(t *testing.T) {
	rig := newSpeechRig(t)
	m := rig.reply(t, "cached", oneSecond)

	rig.toggle(t, m.ID)
	if got := rig.toggle(t, m.ID); got != SpeechIdle {
		t.Fatalf("second toggle state = %s", got)
	}
	if rig.output.suspended != 1 || rig.synth.canceled != 1 {
		t.Errorf("suspended=%d canceled=%d", rig.output.suspended, rig.synth.canceled)
	}
	if rig.clock.Pending() != 0 {
		t.Error("stopping should cancel the completion timer")
	}
	if len(rig.output.played) != 1 {
		t.Errorf("stopping should not decode or play again, played %v", rig.output.played)
	}
	if len(rig.assistant.spoken) != 0 || len(rig.synth.spoken) != 0 || rig.assistant.calls() != 0 {
		t.Errorf("stopping should not synthesize: remote=%d local=%d generate=%d",
			len(rig.assistant.spoken), len(rig.synth.spoken), rig.assistant.calls())
	}
}

func TestSpeechStopSilencesSession(t *testing.T) {
	rig := newSpeechRig(t)
	m := rig.reply(t, "cached", oneSecond)

	rig.toggle(t, m.ID)
	rig.speech.Stop(rig.session)

	if st := rig.speech.Status(rig.session); st.State != SpeechIdle {
		t.Errorf("status after stop = %+v", st)
	}
	if rig.output.suspended != 1 || rig.synth.canceled != 1 {
		t.Errorf("suspended=%d canceled=%d", rig.output.suspended, rig.synth.canceled)
	}
	if rig.clock.Pending() != 0 {
		t.Error("stop should cancel the completion timer")
	}

	// A late completion report for the stopped clip changes nothing
	rig.speech.Finished(rig.session, m.ID, false)
	if got := rig.toggle(t, m.ID); got != SpeechPlayingRemoteClip {
		t.Errorf("replay after stop = %s", got)
	}
}

func TestSpeechSynthesizesOnceAndCaches(t *testing.T) {
	rig := newSpeechRig(t)
	rig.assistant.speech = audio.EncodeSamples(make([]int16, 2400))
	m := rig.reply(t, "**Irrigate** twice a week", "")

	if got := rig.toggle(t, m.ID); got != SpeechPlayingRemoteClip {
		t.Fatalf("state = %s", got)
	}
	if len(rig.assistant.spoken) != 1 || rig.assistant.spoken[0] != "Irrigate twice a week" {
		t.Errorf("synthesized %q", rig.assistant.spoken)
	}

	stored, err := rig.sessionRepo.GetMessage(rig.session, m.ID)
	if err != nil || stored.AudioData == "" {
		t.Fatalf("audio not cached: %v", err)
	}

	rig.toggle(t, m.ID) // stop
	rig.toggle(t, m.ID) // replay
	if len(rig.assistant.spoken) != 1 {
		t.Errorf("synthesized %d times", len(rig.assistant.spoken))
	}
	if len(rig.output.played) != 2 {
		t.Errorf("played %d times", len(rig.output.played))
	}
}

func TestSpeechFallsBackToLocalVoice(t *testing.T) {
	rig := newSpeechRig(t,
		audio.Voice{Name: "Microsoft Kalpana", Lang: "hi-IN"},
		audio.Voice{Name: "Google हिन्दी", Lang: "hi-IN"},
		audio.Voice{Name: "Samantha", Lang: "en-US", Default: true},
	)
	rig.assistant.speechErr = errors.New("quota exceeded")
	m := rig.reply(t, "गेहूं की बुवाई", "")

	if got := rig.toggle(t, m.ID); got != SpeechPlayingLocalSynthesis {
		t.Fatalf("state = %s", got)
	}
	if len(rig.synth.spoken) != 1 {
		t.Fatalf("spoken = %v", rig.synth.spoken)
	}
	got := rig.synth.spoken[0]
	if got.locale != "hi-IN" || got.voice == nil || got.voice.Name != "Google हिन्दी" {
		t.Errorf("spoke %+v", got)
	}
	if got.text != m.Text {
		t.Errorf("text = %q", got.text)
	}
}

func TestSpeechOfflineUsesLocalSynthesis(t *testing.T) {
	rig := newSpeechRig(t)
	rig.checker.online.Store(false)
	m := rig.reply(t, "offline answer", "")

	if got := rig.toggle(t, m.ID); got != SpeechPlayingLocalSynthesis {
		t.Fatalf("state = %s", got)
	}
	if len(rig.assistant.spoken) != 0 {
		t.Error("remote synthesis must not be tried offline")
	}
	if rig.synth.spoken[0].voice != nil {
		t.Error("no voices reported, so none should be chosen")
	}

	rig.speech.Finished(rig.session, m.ID, false)
	if st := rig.speech.Status(rig.session); st.State != SpeechIdle {
		t.Errorf("status = %+v", st)
	}
}

func TestSpeechNewerPlaybackTakesOver(t *testing.T) {
	rig := newSpeechRig(t)
	rig.checker.online.Store(false)
	first := rig.reply(t, "first", "")
	second := rig.reply(t, "second", "")

	rig.toggle(t, first.ID)
	rig.toggle(t, second.ID)

	rig.speech.Finished(rig.session, first.ID, false)
	if st := rig.speech.Status(rig.session); st.MessageID != second.ID || st.State != SpeechPlayingLocalSynthesis {
		t.Errorf("stale completion changed status to %+v", st)
	}

	rig.speech.Finished(rig.session, second.ID, true)
	if st := rig.speech.Status(rig.session); st.State != SpeechIdle {
		t.Errorf("status = %+v", st)
	}
}

func TestSpeechUndecodableClip(t *testing.T) {
	rig := newSpeechRig(t)
	m := rig.reply(t, "broken", "AAE") // not valid base64

	if got := rig.toggle(t, m.ID); got != SpeechIdle {
		t.Fatalf("state = %s", got)
	}
	if len(rig.output.played) != 0 {
		t.Error("nothing should be played")
	}
}

func TestSpeechUnknownMessage(t *testing.T) {
	rig := newSpeechRig(t)

	_, err := rig.speech.Toggle(context.Background(), rig.session, "missing", "hi")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

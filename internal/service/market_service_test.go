package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
)

func TestMarketFetchOffline(t *testing.T) {
	env := newTestEnv(t)
	env.checker.online.Store(false)

	res := env.market.Fetch(context.Background(), "onion", "Nashik")

	want := []float64{2100, 2150, 2120, 2200, 2180}
	if len(res.Data) != len(want) {
		t.Fatalf("got %d points", len(res.Data))
	}
	for i, p := range res.Data {
		if p.Value != want[i] || p.Name != "Week "+string(rune('1'+i)) {
			t.Errorf("point %d = %+v", i, p)
		}
	}
	if res.Text != i18n.T(i18n.KeyMarketOffline, "en") {
		t.Errorf("text = %q", res.Text)
	}
	if env.assistant.calls() != 0 {
		t.Error("assistant must not be called offline")
	}
}

func TestMarketFetchParsesFencedJSON(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{
		Text:    "```json\n{\"summary\":\"Prices rising\",\"data\":[{\"name\":\"Mon\",\"value\":2000},{\"name\":\"Tue\",\"value\":2050}]}\n```",
		Sources: []domain.Source{{URI: "https://enam.gov.in", Title: "eNAM"}},
	}

	res := env.market.Fetch(context.Background(), "common crops", "Pune")

	if res.Text != "Prices rising" || len(res.Data) != 2 || res.Data[1].Value != 2050 {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Sources) != 1 {
		t.Errorf("sources = %v", res.Sources)
	}
	p := env.assistant.lastPrompt()
	if !p.Grounded || !strings.Contains(p.Text, "common crops in or near Pune") {
		t.Errorf("unexpected prompt %+v", p)
	}
}

func TestMarketFetchUnparseable(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{Text: "Prices are stable this week."}

	res := env.market.Fetch(context.Background(), "wheat", "Indore")
	if res.Text != "Prices are stable this week." || res.Data == nil || len(res.Data) != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestMarketFetchFailure(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.err = errors.New("timeout")

	res := env.market.Fetch(context.Background(), "wheat", "Indore")
	if res.Text != i18n.T(i18n.KeyMarketError, "en") || len(res.Data) != 0 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestMarketPostAppendsChart(t *testing.T) {
	env := newTestEnv(t)
	env.checker.online.Store(false)
	st := env.login(t, "Ravi", "Rajkot", "en")

	resp, err := env.market.Post(context.Background(), st.SessionID)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.Question.Text != "Check market prices in Rajkot" {
		t.Errorf("question = %q", resp.Question.Text)
	}
	if resp.Answer.Kind != domain.KindChart || len(resp.Answer.ChartData) != 5 {
		t.Errorf("answer = %+v", resp.Answer)
	}
	env.speaker.expect(t)
}

func TestMarketPostWithoutLocationOrData(t *testing.T) {
	env := newTestEnv(t)
	env.assistant.reply = &Reply{Text: "no numbers today"}
	st := env.login(t, "Ravi", "", "en")

	resp, err := env.market.Post(context.Background(), st.SessionID)
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if resp.Question.Text != "Check market prices in my area" {
		t.Errorf("question = %q", resp.Question.Text)
	}
	if resp.Answer.Kind != domain.KindText || resp.Answer.Text != "no numbers today" {
		t.Errorf("answer = %+v", resp.Answer)
	}
}

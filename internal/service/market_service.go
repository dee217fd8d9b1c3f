package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/connectivity"
	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
)

// MarketCommonCrops is the crop label used by the market price tool
const MarketCommonCrops = "common crops"

// offlineSeries is the historical average shown without connectivity
var offlineSeries = []domain.ChartPoint{
	{Name: "Week 1", Value: 2100},
	{Name: "Week 2", Value: 2150},
	{Name: "Week 3", Value: 2120},
	{Name: "Week 4", Value: 2200},
	{Name: "Week 5", Value: 2180},
}

// MarketService fetches price trends shaped for a chart
type MarketService struct {
	assistant Assistant
	checker   connectivity.Checker
	sessions  *SessionService
	speaker   Speaker
	logger    *zap.Logger
}

// NewMarketService creates a new market service
func NewMarketService(
	assistant Assistant,
	checker connectivity.Checker,
	sessions *SessionService,
	speaker Speaker,
	logger *zap.Logger,
) *MarketService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketService{
		assistant: assistant,
		checker:   checker,
		sessions:  sessions,
		speaker:   speaker,
		logger:    logger,
	}
}

func marketPrompt(crop, location string) string {
	return fmt.Sprintf(`Get the current approximate market prices for %s in or near %s for the last 5 time periods (days/weeks/months).
Return a valid JSON object (NO markdown formatting) with a 'summary' text field explaining the trend, and a 'data' array with 'name' (date/period) and 'value' (price) fields.`, crop, location)
}

type marketPayload struct {
	Summary string              `json:"summary"`
	Data    []domain.ChartPoint `json:"data"`
}

// stripFences removes markdown code fences around a JSON answer
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// Fetch returns a price summary and series for crop near location
func (s *MarketService) Fetch(ctx context.Context, crop, location string) *domain.MarketResult {
	if s.assistant == nil || !s.checker.Online() {
		data := make([]domain.ChartPoint, len(offlineSeries))
		copy(data, offlineSeries)
		return &domain.MarketResult{
			Text: i18n.T(i18n.KeyMarketOffline, i18n.DefaultLanguage),
			Data: data,
		}
	}

	reply, err := s.assistant.Generate(ctx, &Prompt{
		Text:     marketPrompt(crop, location),
		Grounded: true,
	})
	if err != nil {
		s.logger.Error("Market data request failed", zap.Error(err))
		return s.failed()
	}

	body := stripFences(reply.Text)
	if body == "" {
		s.logger.Warn("Market data request returned no data")
		return s.failed()
	}

	var payload marketPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		s.logger.Warn("Failed to parse market data", zap.Error(err))
		return &domain.MarketResult{Text: reply.Text, Data: []domain.ChartPoint{}}
	}
	if payload.Data == nil {
		payload.Data = []domain.ChartPoint{}
	}

	return &domain.MarketResult{
		Text:    payload.Summary,
		Data:    payload.Data,
		Sources: reply.Sources,
	}
}

func (s *MarketService) failed() *domain.MarketResult {
	return &domain.MarketResult{
		Text: i18n.T(i18n.KeyMarketError, i18n.DefaultLanguage),
		Data: []domain.ChartPoint{},
	}
}

// Post runs the market price tool for a session: it asks about the
// farmer's location and appends the answer as a chart when data came back.
func (s *MarketService) Post(ctx context.Context, sessionID string) (*domain.ChatResponse, error) {
	st, err := s.sessions.SetView(ctx, sessionID, domain.ViewChat)
	if err != nil {
		return nil, err
	}

	location := i18n.T(i18n.KeyDefaultLocation, st.Language)
	if st.User != nil && st.User.Location != "" {
		location = st.User.Location
	}

	question := domain.NewTextMessage(domain.SenderUser, i18n.F(i18n.KeyMarketPrompt, st.Language, location), nil)
	if err := s.sessions.Append(sessionID, question); err != nil {
		return nil, err
	}

	result := s.Fetch(ctx, MarketCommonCrops, location)

	text := result.Text
	if text == "" {
		text = i18n.T(i18n.KeyMarketSummary, st.Language)
	}
	var answer *domain.Message
	if len(result.Data) > 0 {
		answer = domain.NewChartMessage(text, result.Data, result.Sources)
	} else {
		answer = domain.NewTextMessage(domain.SenderBot, text, result.Sources)
	}
	if err := s.sessions.Append(sessionID, answer); err != nil {
		return nil, err
	}

	// Only a real summary is read aloud
	if result.Text != "" {
		autoSpeak(ctx, s.speaker, s.logger, st, answer)
	}

	return &domain.ChatResponse{SessionID: sessionID, Question: question, Answer: answer}, nil
}

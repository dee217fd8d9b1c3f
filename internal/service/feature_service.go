package service

import (
	"context"
	"fmt"

	"github.com/liliang-cn/agribot/internal/domain"
	"github.com/liliang-cn/agribot/internal/i18n"
)

// Features is the tool dashboard, in display order
var Features = []domain.Feature{
	{ID: "disease_detect", Title: "Disease Detection", Description: "Identify crop diseases using AI camera analysis.",
		Prompt: "I want to detect a disease in my crop. I will upload a photo.", RequiresCamera: true, Category: domain.CategoryTech},
	{ID: "weather", Title: "Weather Forecast", Description: "Real-time rain, temperature & humidity alerts.",
		Prompt: "What is the detailed weather forecast for my farm location for the next 7 days?", Category: domain.CategoryCrop},
	{ID: domain.FeatureMarketPrice, Title: "Mandi Prices", Description: "Live market rates for crops in nearby mandis.",
		Prompt: "What are the current market prices (Mandi Bhav) for major crops in my district?", Category: domain.CategoryMarket},
	{ID: "crop_calendar", Title: "Crop Calendar", Description: "Month-wise farming activities planner.",
		Prompt: "Create a crop calendar for this month. What tasks should I prioritize?", Category: domain.CategoryCrop},
	{ID: "gov_schemes", Title: "Govt Schemes", Description: "Latest subsidies & financial aid for farmers.",
		Prompt: "List the latest government agricultural schemes and subsidies I am eligible for.", Category: domain.CategoryFinance},
	{ID: "soil_health", Title: "Soil Health", Description: "Recommendations for soil testing & nutrients.",
		Prompt: "How do I improve my soil health? Recommend fertilizers based on general soil types.", Category: domain.CategoryCrop},
	{ID: "pest_control", Title: "Pest Control", Description: "Organic & chemical solutions for pest attacks.",
		Prompt: "Suggest effective pest control methods (organic and chemical) for common pests.", Category: domain.CategoryCrop},
	{ID: "water_mgmt", Title: "Water Mgmt", Description: "Smart irrigation & water conservation tips.",
		Prompt: "Give me tips for efficient water management and irrigation techniques.", Category: domain.CategoryTech},
	{ID: "fertilizer", Title: "Fertilizer Calc", Description: "Calculate exact fertilizer dosage for crops.",
		Prompt: "Help me calculate the right amount of NPK fertilizer for one acre of land.", Category: domain.CategoryCrop},
	{ID: domain.FeatureExpertConnect, Title: "Expert Connect", Description: "Chat or call with agriculture specialists.",
		Prompt: "I need to connect with an agriculture expert for a consultation.", Category: domain.CategorySupport},
	{ID: "expense_track", Title: "Expense Tracker", Description: "Monitor farm income and daily expenses.",
		Prompt: "I want to track my farm expenses. Help me categorize costs like seeds, labor, and fuel.", Category: domain.CategoryFinance},
	{ID: "yield_predict", Title: "Yield Prediction", Description: "Estimate harvest quantity based on conditions.",
		Prompt: "Can you help predict my crop yield based on current weather and soil conditions?", Category: domain.CategoryTech},
	{ID: "machinery", Title: "Machinery & Fuel", Description: "Maintenance tips and fuel saving guide.",
		Prompt: "Provide maintenance tips for tractors and farm machinery to save fuel.", Category: domain.CategoryTech},
	{ID: "organic_farm", Title: "Organic Farming", Description: "Guide to natural farming and certification.",
		Prompt: "Guide me on how to start organic farming and get certification.", Category: domain.CategoryCrop},
	{ID: "livestock", Title: "Livestock Care", Description: "Health & feed management for cattle.",
		Prompt: "What are the best practices for managing cattle health and feed?", Category: domain.CategoryCrop},
	{ID: "storage", Title: "Storage & Ware", Description: "Post-harvest storage and cold chain info.",
		Prompt: "How can I store my harvested crops properly to prevent spoilage?", Category: domain.CategoryMarket},
	{ID: "logistics", Title: "Logistics", Description: "Transportation and supply chain support.",
		Prompt: "Find me information on transporting agricultural goods to the market.", Category: domain.CategoryMarket},
	{ID: "crop_insurance", Title: "Crop Insurance", Description: "Protect crops against natural calamities.",
		Prompt: "Explain the process to apply for crop insurance (Pradhan Mantri Fasal Bima Yojana).", Category: domain.CategoryFinance},
	{ID: "community", Title: "Community", Description: "Connect with other farmers and forums.",
		Prompt: "Are there any farmer communities or forums I can join?", Category: domain.CategorySupport},
	{ID: "seed_vault", Title: "Seed Selection", Description: "Choose the best seed varieties for your region.",
		Prompt: "How do I select the best high-yield seed varieties for my soil type?", Category: domain.CategoryCrop},
}

// FeatureResult is the outcome of running a dashboard tool
type FeatureResult struct {
	Feature     domain.Feature       `json:"feature"`
	Specialists []domain.Specialist  `json:"specialists,omitempty"`
	Chat        *domain.ChatResponse `json:"chat,omitempty"`
}

// FeatureService runs dashboard tools
type FeatureService struct {
	sessions      *SessionService
	chat          *ChatService
	market        *MarketService
	consultations *ConsultationService
}

// NewFeatureService creates a new feature service
func NewFeatureService(
	sessions *SessionService,
	chat *ChatService,
	market *MarketService,
	consultations *ConsultationService,
) *FeatureService {
	return &FeatureService{
		sessions:      sessions,
		chat:          chat,
		market:        market,
		consultations: consultations,
	}
}

// List returns the dashboard tools
func (s *FeatureService) List() []domain.Feature {
	return Features
}

func lookupFeature(id string) (domain.Feature, bool) {
	for _, f := range Features {
		if f.ID == id {
			return f, true
		}
	}
	return domain.Feature{}, false
}

// Run executes a tool for a session
func (s *FeatureService) Run(ctx context.Context, sessionID, featureID string) (*FeatureResult, error) {
	feature, ok := lookupFeature(featureID)
	if !ok {
		return nil, fmt.Errorf("%w: feature %s", domain.ErrNotFound, featureID)
	}

	st, err := s.sessions.SetView(ctx, sessionID, domain.ViewChat)
	if err != nil {
		return nil, err
	}
	result := &FeatureResult{Feature: feature}

	switch feature.ID {
	case domain.FeatureExpertConnect:
		result.Specialists = s.consultations.ListSpecialists(st.Language)
		return result, nil

	case domain.FeatureMarketPrice:
		result.Chat, err = s.market.Post(ctx, sessionID)

	default:
		prompt := feature.Prompt
		if feature.RequiresCamera {
			prompt = i18n.F(i18n.KeyCameraPromptNote, i18n.DefaultLanguage, prompt)
		}
		result.Chat, err = s.chat.Send(ctx, sessionID, &domain.ChatRequest{Text: prompt})
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

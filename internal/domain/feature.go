package domain

// FeatureCategory groups dashboard tools
type FeatureCategory string

const (
	CategoryCrop    FeatureCategory = "Crop"
	CategoryMarket  FeatureCategory = "Market"
	CategoryTech    FeatureCategory = "Tech"
	CategorySupport FeatureCategory = "Support"
	CategoryFinance FeatureCategory = "Finance"
)

// Feature is a tool on the dashboard
type Feature struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Prompt         string          `json:"prompt"`
	RequiresCamera bool            `json:"requires_camera,omitempty"`
	Category       FeatureCategory `json:"category"`
}

// Feature ids with dedicated handling
const (
	FeatureMarketPrice   = "market_price"
	FeatureExpertConnect = "expert_connect"
)

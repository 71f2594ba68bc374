package model

// HeuristicResult holds the raw presence signals extracted from one
// business's website. Produced by the heuristics extractor; absent or
// undetectable signals stay at their zero value, which the friction
// scorer treats as the friction-increasing case.
type HeuristicResult struct {
	HasBooking       bool     `json:"has_booking"`
	BookingProviders []string `json:"booking_providers,omitempty"`
	HasChat          bool     `json:"has_chat"`
	ChatProviders    []string `json:"chat_providers,omitempty"`
	HasInstantQuote  bool     `json:"has_instant_quote"`
	QuoteProviders   []string `json:"quote_providers,omitempty"`
	HasFileUpload    bool     `json:"has_file_upload"`

	FormInputs   int `json:"form_inputs"`
	FormRequired int `json:"form_required"`

	Emails     []string `json:"emails,omitempty"`
	Phones     []string `json:"phones,omitempty"`
	ContactURL string   `json:"contact_url,omitempty"`

	HasViewportMeta bool  `json:"has_viewport_meta"`
	HTMLSizeBytes   int64 `json:"html_size_bytes"`

	HasAnalytics     bool `json:"has_analytics"`
	HasTagManager    bool `json:"has_tag_manager"`
	HasAdsTag        bool `json:"has_ads_tag"`
	HasPixel         bool `json:"has_pixel"`
	HasPrivacyPolicy bool `json:"has_privacy_policy"`
	HasTerms         bool `json:"has_terms"`
}

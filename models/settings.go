package models

// Settings holds scalar user preferences. Unlike favorites and tags, settings
// are synchronized as a single object field ("settings") on the user
// document, with no per-entity reconciliation.
type Settings struct {
	// DailyGoal is the number of practice sentences per day.
	DailyGoal int `json:"dailyGoal,omitempty"`

	// PlaybackRate is the reference-audio playback speed (1.0 = normal).
	PlaybackRate float64 `json:"playbackRate,omitempty"`

	// ShowPhonemes toggles the per-phoneme score breakdown.
	ShowPhonemes bool `json:"showPhonemes"`

	// Locale is the UI locale tag, e.g. "en-US".
	Locale string `json:"locale,omitempty"`
}

package models

// Theme is the color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Language is a UI language code
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
)

const (
	MinFontSizeLevel = -2
	MaxFontSizeLevel = 2
)

// Preferences are the per-user display settings
type Preferences struct {
	Theme         Theme    `json:"theme"`
	FontSizeLevel int      `json:"fontSizeLevel"`
	HighContrast  bool     `json:"highContrast"`
	DyslexiaFont  bool     `json:"dyslexiaFont"`
	Language      Language `json:"language"`
}

// DefaultPreferences is what a new visitor gets
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeLight, Language: LanguageEnglish}
}

// UpdatePreferencesRequest changes any subset of preferences
type UpdatePreferencesRequest struct {
	Theme         *Theme    `json:"theme" binding:"omitempty,oneof=light dark"`
	FontSizeLevel *int      `json:"fontSizeLevel"`
	HighContrast  *bool     `json:"highContrast"`
	DyslexiaFont  *bool     `json:"dyslexiaFont"`
	Language      *Language `json:"language" binding:"omitempty,oneof=en hi"`
}

// Apply merges the request into p and clamps the font size level
func (r UpdatePreferencesRequest) Apply(p Preferences) Preferences {
	if r.Theme != nil {
		p.Theme = *r.Theme
	}
	if r.FontSizeLevel != nil {
		p.FontSizeLevel = *r.FontSizeLevel
	}
	if r.HighContrast != nil {
		p.HighContrast = *r.HighContrast
	}
	if r.DyslexiaFont != nil {
		p.DyslexiaFont = *r.DyslexiaFont
	}
	if r.Language != nil {
		p.Language = *r.Language
	}
	return p.Normalize()
}

// Normalize clamps and defaults out-of-range values
func (p Preferences) Normalize() Preferences {
	if p.FontSizeLevel < MinFontSizeLevel {
		p.FontSizeLevel = MinFontSizeLevel
	}
	if p.FontSizeLevel > MaxFontSizeLevel {
		p.FontSizeLevel = MaxFontSizeLevel
	}
	if p.Theme != ThemeDark {
		p.Theme = ThemeLight
	}
	if p.Language != LanguageHindi {
		p.Language = LanguageEnglish
	}
	return p
}

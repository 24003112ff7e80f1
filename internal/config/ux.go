package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is "light", "dark" or "auto" (detect from the terminal).
	Theme string `json:"theme" yaml:"theme" env:"SHOWCASE_THEME"`

	// CardWidth is the width of one project card in columns. The grid fits
	// as many cards per row as the terminal allows.
	CardWidth int `json:"card_width" yaml:"card_width" env:"SHOWCASE_CARD_WIDTH"`

	// ShowTags renders the category tag strip above the search field.
	ShowTags bool `json:"show_tags" yaml:"show_tags" env:"SHOWCASE_SHOW_TAGS"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:     "auto",
		CardWidth: 38,
		ShowTags:  true,
	}
}

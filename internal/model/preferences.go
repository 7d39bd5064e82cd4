package model

const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	ViewLinks = "links"
	ViewTools = "tools"

	DefaultAccent = "indigo"
)

type Preferences struct {
	Theme      string `json:"theme"`
	Accent     string `json:"accent"`
	ActiveView string `json:"activeView"`
}

// Gradient is the pair of background colors derived from an accent.
type Gradient struct {
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Theme:      ThemeDark,
		Accent:     DefaultAccent,
		ActiveView: ViewLinks,
	}
}

package layouts

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Theme is the palette exposed to the stylesheet as CSS variables.
type Theme struct {
	Primary   string
	Secondary string
	Accent    string
	Highlight string
}

func DefaultTheme() Theme {
	return Theme{
		Primary:   "#1f2937",
		Secondary: "#e5e7eb",
		Accent:    "#2563eb",
		Highlight: "#16a34a",
	}
}

func getThemeCssVars(theme Theme) string {
	defaults := DefaultTheme()
	return fmt.Sprintf(
		":root{--theme-primary:%s;--theme-secondary:%s;--theme-accent:%s;--theme-highlight:%s;}",
		themeColorOrDefault(theme.Primary, defaults.Primary),
		themeColorOrDefault(theme.Secondary, defaults.Secondary),
		themeColorOrDefault(theme.Accent, defaults.Accent),
		themeColorOrDefault(theme.Highlight, defaults.Highlight),
	)
}

func themeColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if !hexColorRegex.MatchString(trimmed) {
		return fallback
	}
	return trimmed
}

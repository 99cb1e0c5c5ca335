package explorer

import "strings"

// Theme is the page colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named by s, and false for anything else.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return "", false
}

// PreferredTheme derives the default theme from an OS colour-scheme
// preference (the Sec-CH-Prefers-Color-Scheme client hint).
func PreferredTheme(hint string) Theme {
	if t, ok := ParseTheme(strings.Trim(hint, `"`)); ok {
		return t
	}
	return ThemeLight
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

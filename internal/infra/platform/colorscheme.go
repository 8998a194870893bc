package platform

import (
	"context"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// StaticColorScheme answers the dark mode query from configuration.
type StaticColorScheme struct {
	dark bool
}

// NewStaticColorScheme accepts "dark" or anything else for light.
func NewStaticColorScheme(scheme string) StaticColorScheme {
	return StaticColorScheme{dark: scheme == "dark"}
}

// PrefersDark implements dashboard.ColorSchemeQuery.
func (s StaticColorScheme) PrefersDark(context.Context) bool {
	return s.dark
}

var _ dashboard.ColorSchemeQuery = StaticColorScheme{}

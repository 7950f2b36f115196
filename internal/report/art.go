package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Condition art is grouped into families keyed off the condition text, so
// every string weatherapi.com emits maps to a sprite. Unknown conditions
// fall back to the plain cloud.
type family int

const (
	famClear family = iota
	famPartly
	famCloud
	famRain
	famSnow
	famIce
	famStorm
	famFog
)

var (
	sunStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	moonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	cloudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	rainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	snowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	iceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	stormStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	fogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var (
	sunArt = strings.Join([]string{
		`    \   /`,
		"     .-.",
		"  - (   ) -",
		"     `-'",
		`    /   \`,
	}, "\n")

	moonArt = strings.Join([]string{
		"     .--.",
		"    / o. \\",
		"   | o  . |",
		`    \ .  /`,
		"     `--'",
	}, "\n")

	partlyDayArt = strings.Join([]string{
		`    \  /`,
		`  _ /"".--.`,
		`    \_(    ).`,
		`    /(___.__)`,
	}, "\n")

	partlyNightArt = strings.Join([]string{
		"      o .--.",
		"     .-(    ).",
		"    (___.__)__)",
	}, "\n")

	cloudArt = strings.Join([]string{
		"      .--.",
		"   .-(    ).",
		"  (___.__)__)",
	}, "\n")

	rainArt = strings.Join([]string{
		"      .--.",
		"   .-(    ).",
		"  (___.__)__)",
		"    ' ' ' '",
		"   ' ' ' '",
	}, "\n")

	snowArt = strings.Join([]string{
		"      .--.",
		"   .-(    ).",
		"  (___.__)__)",
		"    *  *  *",
		"     *  *  *",
	}, "\n")

	iceArt = strings.Join([]string{
		"      .--.",
		"   .-(    ).",
		"  (___.__)__)",
		"    ' * ' *",
		"   * ' * '",
	}, "\n")

	stormArt = strings.Join([]string{
		"      .--.",
		"   .-(    ).",
		"  (___.__)__)",
		"     /_  /_",
		"      /   /",
	}, "\n")

	fogArt = strings.Join([]string{
		"   _ - _ - _ -",
		"    _ - _ - _",
		"   _ - _ - _ -",
		"    _ - _ - _",
	}, "\n")
)

// Art returns the colored sprite for a condition at the given time of day.
func Art(condition string, isDay bool) string {
	switch classify(condition) {
	case famClear:
		if isDay {
			return sunStyle.Render(sunArt)
		}
		return moonStyle.Render(moonArt)
	case famPartly:
		if isDay {
			return sunStyle.Render(partlyDayArt)
		}
		return cloudStyle.Render(partlyNightArt)
	case famRain:
		return rainStyle.Render(rainArt)
	case famSnow:
		return snowStyle.Render(snowArt)
	case famIce:
		return iceStyle.Render(iceArt)
	case famStorm:
		return stormStyle.Render(stormArt)
	case famFog:
		return fogStyle.Render(fogArt)
	default:
		return cloudStyle.Render(cloudArt)
	}
}

// classify picks the art family for a condition string. Order matters:
// compound conditions ("Patchy light snow with thunder") resolve to the
// most dramatic keyword.
func classify(condition string) family {
	c := strings.ToLower(condition)
	switch {
	case strings.Contains(c, "thunder"):
		return famStorm
	case strings.Contains(c, "snow"), strings.Contains(c, "blizzard"):
		return famSnow
	case strings.Contains(c, "fog"), strings.Contains(c, "mist"):
		return famFog
	case strings.Contains(c, "sleet"), strings.Contains(c, "ice pellet"), strings.Contains(c, "freezing"):
		return famIce
	case strings.Contains(c, "rain"), strings.Contains(c, "drizzle"), strings.Contains(c, "shower"):
		return famRain
	case strings.Contains(c, "partly"):
		return famPartly
	case strings.Contains(c, "overcast"), strings.Contains(c, "cloud"):
		return famCloud
	case strings.Contains(c, "sunny"), strings.Contains(c, "clear"):
		return famClear
	default:
		return famCloud
	}
}

// Package clock renders the clock label as Pango markup.
package clock

import (
	"fmt"
	"time"

	"github.com/jmylchreest/hyprclock/internal/config"
)

// Parts is the textual content of a rendered time, before markup.
type Parts struct {
	HourMinute string // "09:05"
	Suffix     string // "AM", "PM", or empty in 24h mode
}

// Style holds the span attributes used for rendering.
type Style struct {
	Format      config.TimeFormat
	TimeColor   string
	SuffixColor string
}

// StyleFromConfig builds a Style from the clock section of the config.
func StyleFromConfig(cfg config.ClockConfig) Style {
	return Style{
		Format:      config.TimeFormat(cfg.Format),
		TimeColor:   cfg.TimeColor,
		SuffixColor: cfg.SuffixColor,
	}
}

// DefaultStyle is the 12 hour white/red style.
func DefaultStyle() Style {
	return StyleFromConfig(config.DefaultConfig().Clock)
}

// TimeParts splits t into its hour:minute and suffix text.
func TimeParts(t time.Time, format config.TimeFormat) Parts {
	if format == config.TimeFormat24h {
		return Parts{HourMinute: t.Format("15:04")}
	}
	return Parts{
		HourMinute: t.Format("03:04"),
		Suffix:     t.Format("PM"),
	}
}

// FormatTime renders t as label markup.
func FormatTime(t time.Time, style Style) string {
	p := TimeParts(t, style.Format)

	markup := fmt.Sprintf("<span foreground='%s' size='large'>%s</span>", style.TimeColor, p.HourMinute)
	if p.Suffix != "" {
		markup += fmt.Sprintf(" <span foreground='%s' weight='bold' size='small'>%s</span>", style.SuffixColor, p.Suffix)
	}
	return markup
}

// FormatDate renders the weekday and date of t as label markup.
func FormatDate(t time.Time, style Style) string {
	return fmt.Sprintf(
		"<span foreground='%s' size='large'>%s</span> <span foreground='%s' weight='bold' size='small'>%s</span>",
		style.TimeColor, t.Format("Monday"),
		style.SuffixColor, t.Format("02 Jan"),
	)
}

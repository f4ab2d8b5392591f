package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/hyprclock/internal/config"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.October, 15, hour, minute, 0, 0, time.Local)
}

func TestTimeParts_12h(t *testing.T) {
	tests := []struct {
		name       string
		t          time.Time
		hourMinute string
		suffix     string
	}{
		{"morning", at(9, 5), "09:05", "AM"},
		{"late evening", at(23, 59), "11:59", "PM"},
		{"midnight", at(0, 0), "12:00", "AM"},
		{"noon", at(12, 0), "12:00", "PM"},
		{"afternoon", at(13, 30), "01:30", "PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := TimeParts(tt.t, config.TimeFormat12h)
			assert.Equal(t, tt.hourMinute, p.HourMinute)
			assert.Equal(t, tt.suffix, p.Suffix)
		})
	}
}

func TestTimeParts_24h(t *testing.T) {
	p := TimeParts(at(23, 59), config.TimeFormat24h)
	assert.Equal(t, "23:59", p.HourMinute)
	assert.Empty(t, p.Suffix)

	p = TimeParts(at(9, 5), config.TimeFormat24h)
	assert.Equal(t, "09:05", p.HourMinute)
}

func TestFormatTime_DefaultStyle(t *testing.T) {
	markup := FormatTime(at(9, 5), DefaultStyle())
	assert.Equal(t,
		"<span foreground='#FFFFFF' size='large'>09:05</span> <span foreground='#FF0110' weight='bold' size='small'>AM</span>",
		markup,
	)
}

func TestFormatTime_24hOmitsSuffix(t *testing.T) {
	style := DefaultStyle()
	style.Format = config.TimeFormat24h

	markup := FormatTime(at(23, 59), style)
	assert.Equal(t, "<span foreground='#FFFFFF' size='large'>23:59</span>", markup)
}

func TestFormatTime_CustomColors(t *testing.T) {
	style := Style{Format: config.TimeFormat12h, TimeColor: "#112233", SuffixColor: "#445566"}

	markup := FormatTime(at(23, 59), style)
	assert.Contains(t, markup, "foreground='#112233'")
	assert.Contains(t, markup, "foreground='#445566'")
	assert.Contains(t, markup, ">11:59<")
	assert.Contains(t, markup, ">PM<")
}

func TestFormatDate(t *testing.T) {
	markup := FormatDate(at(9, 5), DefaultStyle())
	assert.Contains(t, markup, ">Thursday<")
	assert.Contains(t, markup, ">15 Oct<")
}

func TestLabel_DateIntroIsOneShot(t *testing.T) {
	l := NewLabel(DefaultStyle(), true)

	first := l.Render(at(9, 5))
	assert.Contains(t, first, "Thursday")

	second := l.Render(at(9, 5))
	assert.Contains(t, second, ">09:05<")

	third := l.Render(at(9, 6))
	assert.Contains(t, third, ">09:06<")
}

func TestLabel_NoIntro(t *testing.T) {
	l := NewLabel(DefaultStyle(), false)
	assert.Equal(t, FormatTime(at(9, 5), DefaultStyle()), l.Render(at(9, 5)))
}

func TestLabel_SetStyle(t *testing.T) {
	l := NewLabel(DefaultStyle(), false)
	l.SetStyle(Style{Format: config.TimeFormat24h, TimeColor: "#000"})

	assert.Equal(t, "<span foreground='#000' size='large'>23:59</span>", l.Render(at(23, 59)))
}

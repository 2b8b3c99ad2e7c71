package components

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/esnet/internal/tui/tuistyles"
)

// Slider is an integer parameter adjusted in fixed steps
type Slider struct {
	Label     string
	Value     int64
	Min       int64
	Max       int64
	Step      int64
	Format    func(int64) string
	Width     int
	IsFocused bool
}

// NewSlider creates a slider; the value is clamped to the range
func NewSlider(label string, value, min, max, step int64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
		Format: func(v int64) string {
			return fmt.Sprintf("%d", v)
		},
	}
	s.SetValue(value)
	return s
}

// WithFormat sets how the value is displayed
func (s *Slider) WithFormat(format func(int64) string) *Slider {
	s.Format = format
	return s
}

// WithWidth sets the track width
func (s *Slider) WithWidth(width int) *Slider {
	s.Width = width
	return s
}

// Increment raises the value by one step, stopping at Max
func (s *Slider) Increment() bool {
	return s.SetValue(s.Value + s.Step)
}

// Decrement lowers the value by one step, stopping at Min
func (s *Slider) Decrement() bool {
	return s.SetValue(s.Value - s.Step)
}

// SetValue clamps and stores value, reporting whether it changed
func (s *Slider) SetValue(value int64) bool {
	if value < s.Min {
		value = s.Min
	}
	if value > s.Max {
		value = s.Max
	}
	changed := value != s.Value
	s.Value = value
	return changed
}

// Fraction returns the position of the value within the range, 0 to 1
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return float64(s.Value-s.Min) / float64(s.Max-s.Min)
}

// Render returns the single-line slider: label, track and value
func (s *Slider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
	}

	filled := int(s.Fraction()*float64(s.Width-1) + 0.5)

	var track strings.Builder
	for i := 0; i < s.Width; i++ {
		switch {
		case i == filled:
			track.WriteString(tuistyles.SliderThumbStyle.Render("●"))
		case i < filled:
			track.WriteString(tuistyles.SliderThumbStyle.Render("━"))
		default:
			track.WriteString(tuistyles.SliderTrackStyle.Render("─"))
		}
	}

	cursor := "  "
	if s.IsFocused {
		cursor = "▸ "
	}

	return fmt.Sprintf("%s%s [%s] %s",
		cursor,
		labelStyle.Width(18).Render(s.Label),
		track.String(),
		tuistyles.ParameterValueStyle.Render(s.Format(s.Value)))
}

package components

import (
	"fmt"

	"github.com/rgehrsitz/esnet/internal/tui/tuistyles"
)

// Option is one choice of a Selector
type Option struct {
	Value string
	Label string
}

// Selector cycles through a fixed list of options
type Selector struct {
	Label     string
	Options   []Option
	Index     int
	IsFocused bool
}

// NewSelector creates a selector positioned on the option matching value,
// or on the first option when none matches
func NewSelector(label string, options []Option, value string) *Selector {
	s := &Selector{Label: label, Options: options}
	for i, o := range options {
		if o.Value == value {
			s.Index = i
			break
		}
	}
	return s
}

// Next moves to the following option, wrapping around
func (s *Selector) Next() {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Options)
}

// Prev moves to the previous option, wrapping around
func (s *Selector) Prev() {
	if len(s.Options) == 0 {
		return
	}
	s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
}

// Value returns the selected option value
func (s *Selector) Value() string {
	if len(s.Options) == 0 {
		return ""
	}
	return s.Options[s.Index].Value
}

// Render returns the single-line selector
func (s *Selector) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	cursor := "  "
	if s.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		cursor = "▸ "
	}

	current := "-"
	if len(s.Options) > 0 {
		current = s.Options[s.Index].Label
	}

	return fmt.Sprintf("%s%s ◂ %s ▸",
		cursor,
		labelStyle.Width(18).Render(s.Label),
		tuistyles.ParameterValueStyle.Render(current))
}

// Package theme provides the semantic colors used to draw listboxes.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme exposes semantic colors. Every color adapts to light/dark terminals.
type Theme interface {
	Primary() lipgloss.AdaptiveColor   // focused borders, header bg
	Secondary() lipgloss.AdaptiveColor // selected option marker
	Accent() lipgloss.AdaptiveColor    // ids

	Error() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor

	BackgroundSecondary() lipgloss.AdaptiveColor // selected row

	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
	BorderDim() lipgloss.AdaptiveColor
}

// Palette is a Theme backed by plain values.
type Palette struct {
	PrimaryColor             lipgloss.AdaptiveColor
	SecondaryColor           lipgloss.AdaptiveColor
	AccentColor              lipgloss.AdaptiveColor
	ErrorColor               lipgloss.AdaptiveColor
	SuccessColor             lipgloss.AdaptiveColor
	TextColor                lipgloss.AdaptiveColor
	TextMutedColor           lipgloss.AdaptiveColor
	BackgroundSecondaryColor lipgloss.AdaptiveColor
	BorderNormalColor        lipgloss.AdaptiveColor
	BorderFocusedColor       lipgloss.AdaptiveColor
	BorderDimColor           lipgloss.AdaptiveColor
}

func (p Palette) Primary() lipgloss.AdaptiveColor   { return p.PrimaryColor }
func (p Palette) Secondary() lipgloss.AdaptiveColor { return p.SecondaryColor }
func (p Palette) Accent() lipgloss.AdaptiveColor    { return p.AccentColor }
func (p Palette) Error() lipgloss.AdaptiveColor     { return p.ErrorColor }
func (p Palette) Success() lipgloss.AdaptiveColor   { return p.SuccessColor }
func (p Palette) Text() lipgloss.AdaptiveColor      { return p.TextColor }
func (p Palette) TextMuted() lipgloss.AdaptiveColor { return p.TextMutedColor }

func (p Palette) BackgroundSecondary() lipgloss.AdaptiveColor {
	return p.BackgroundSecondaryColor
}

func (p Palette) BorderNormal() lipgloss.AdaptiveColor  { return p.BorderNormalColor }
func (p Palette) BorderFocused() lipgloss.AdaptiveColor { return p.BorderFocusedColor }
func (p Palette) BorderDim() lipgloss.AdaptiveColor     { return p.BorderDimColor }

func color(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CompactTheme is a dark, compact theme: charcoal surfaces with a blue accent
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors. The palette is dark regardless of the system variant.
func (t *CompactTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 43, G: 43, B: 43, A: 255}
	case theme.ColorNameInputBackground, theme.ColorNameButton:
		return color.RGBA{R: 54, G: 54, B: 54, A: 255}
	case theme.ColorNameInputBorder, theme.ColorNameSeparator:
		return color.RGBA{R: 61, G: 61, B: 61, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return color.RGBA{R: 13, G: 110, B: 253, A: 255}
	case theme.ColorNameHover:
		return color.RGBA{R: 11, G: 94, B: 215, A: 255}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 6
	case theme.SizeNameInnerPadding:
		return 8
	case theme.SizeNameText:
		return 12
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameInputBorder:
		return 2
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/binderlca/internal/engine"
)

// Palette (ANSI 256).
const (
	ColorHeader  = lipgloss.Color("39")
	ColorBorder  = lipgloss.Color("240")
	ColorLabel   = lipgloss.Color("246")
	ColorValue   = lipgloss.Color("255")
	ColorOK      = lipgloss.Color("42")
	ColorGood    = lipgloss.Color("114")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("203")
	ColorMuted   = lipgloss.Color("240")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorHeader)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(cardWidth)
	bestCardStyle = cardStyle.BorderForeground(ColorOK)
)

// BandColor returns the colour used for a reduction band.
func BandColor(b engine.Band) lipgloss.Color {
	switch b {
	case engine.BandGreat:
		return ColorOK
	case engine.BandGood:
		return ColorGood
	case engine.BandMarginal:
		return ColorWarning
	case engine.BandWorse:
		return ColorError
	default:
		return ColorMuted
	}
}

// RenderBand renders text in the colour of band b.
func RenderBand(b engine.Band, text string) string {
	return lipgloss.NewStyle().Foreground(BandColor(b)).Bold(true).Render(text)
}

// Key bindings.
const (
	keyQuit    = "q"
	keyCtrlC   = "ctrl+c"
	keyEnter   = "enter"
	keyEsc     = "esc"
	keySlash   = "/"
	keySort    = "s"
	keyReverse = "r"
	keyScope   = "f"
	keyA4      = "a"
	keyPolicy  = "p"
	keyCompare = "c"
	keySpace   = " "
	keyView    = "v"
	keyExport  = "e"
	keyDistUp  = "+"
	keyDistUp2 = "="
	keyDistDn  = "-"
	keyVolUp   = "]"
	keyVolDn   = "["
	keyDoseUp  = "}"
	keyDoseDn  = "{"
	keyBack    = "backspace"
)

// Layout.
const (
	defaultWidth       = 120
	defaultHeight      = 30
	chromeHeight       = 7
	detailChromeHeight = 22
	minHeight          = 5
	cardWidth          = 34

	distanceStepKm = 10.0
	volumeStepM3   = 10.0
	dosageStepKg   = 10.0
)

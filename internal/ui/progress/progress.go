// Package progress reports wizard narrative and operation outcomes on the
// terminal.
package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// State is the outcome attached to a reported message.
type State int

const (
	// StateStart marks an operation in progress.
	StateStart State = iota
	StateSucceed
	StateFail
	StateWarn
	StateInfo
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSucceed:
		return "succeed"
	case StateFail:
		return "fail"
	case StateWarn:
		return "warn"
	case StateInfo:
		return "info"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reporter receives narrative text and state transitions.
type Reporter interface {
	Show(text string)
	Report(state State, text string)
}

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	failedStyle  = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	infoStyle    = lipgloss.NewStyle().Foreground(colorBlue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	spinner   = "[..]"
	warnMark  = "[??]"
	infoMark  = "[ii]"
)

// Printer writes reports to a terminal or any other writer.
type Printer struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// NewPrinter returns a printer writing to out. Styling is applied only when
// color is true.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

// Title prints a bold heading.
func (p *Printer) Title(text string) {
	p.println("")
	p.println("    " + p.render(titleStyle, text))
}

// Show prints narrative text as-is.
func (p *Printer) Show(text string) {
	p.println(text)
}

// Report prints text prefixed with the mark of state.
func (p *Printer) Report(state State, text string) {
	var mark string
	switch state {
	case StateStart:
		mark = p.render(dimStyle, spinner)
	case StateSucceed:
		mark = p.render(successStyle, checkMark)
	case StateFail:
		mark = p.render(failedStyle, crossMark)
	case StateWarn:
		mark = p.render(warningStyle, warnMark)
	case StateInfo:
		mark = p.render(infoStyle, infoMark)
	default:
		mark = spinner
	}
	p.println(mark + " " + text)
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

func (p *Printer) println(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.out, text)
}

// Discard drops every report.
type Discard struct{}

// Show implements Reporter.
func (Discard) Show(string) {}

// Report implements Reporter.
func (Discard) Report(State, string) {}

package headless

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Printer writes one line per timer state. Colors follow the countdown
// severity and are dropped automatically when out is not a terminal.
// Safe for concurrent use.
type Printer struct {
	log *logger.Logger

	mu  sync.Mutex
	out io.Writer

	normal  lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	dim     lipgloss.Style
}

// NewPrinter creates a printer. If out is nil, os.Stdout is used.
func NewPrinter(log *logger.Logger, out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	r := lipgloss.NewRenderer(out)
	return &Printer{
		log:     log,
		out:     out,
		normal:  r.NewStyle().Bold(true),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#fde68a")),
		danger:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#fca5a5")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#71717a")),
	}
}

// Print writes the state as "MM:SS Status".
func (p *Printer) Print(s domain.TimerState) {
	style := p.normal
	switch s.Severity() {
	case domain.SeverityWarning:
		style = p.warning
	case domain.SeverityDanger:
		style = p.danger
	}
	p.writeln(style.Render(s.Display()) + " " + s.Status())
}

// Hint writes a dimmed informational line.
func (p *Printer) Hint(format string, a ...any) {
	p.writeln(p.dim.Render(fmt.Sprintf(format, a...)))
}

func (p *Printer) writeln(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintln(p.out, line); err != nil {
		p.log.Warn("headless: writing output: %v", err)
	}
}

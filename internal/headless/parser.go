// Package headless drives a countdown from plain text: it prints one line
// per state change and reads typed commands, for use when stdout is not a
// terminal.
package headless

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// Command is a parsed input line.
type Command struct {
	Action domain.Action
	Status bool // print the current state
	Quit   bool
	Raw    string
}

// KeywordParser matches input lines to commands using keywords.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex *regexp.Regexp
	cmd   Command
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(start|go|resume|s)$`), Command{Action: domain.ActionStart}},
		{regexp.MustCompile(`(?i)^(pause|wait|p)$`), Command{Action: domain.ActionPause}},
		{regexp.MustCompile(`(?i)^(stop|x)$`), Command{Action: domain.ActionStop}},
		{regexp.MustCompile(`(?i)^(reset|r)$`), Command{Action: domain.ActionReset}},
		{regexp.MustCompile(`(?i)^(\+\s*1|1|\+1\s*min|add 1)$`), Command{Action: domain.ActionAddOne}},
		{regexp.MustCompile(`(?i)^(\+\s*5|5|\+5\s*min|add 5)$`), Command{Action: domain.ActionAddFive}},
		{regexp.MustCompile(`(?i)^(status|time|\?)$`), Command{Status: true}},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), Command{Quit: true}},
	}
	return p
}

// Parse converts one input line into a command. Unmatched input yields a
// command with only Raw set.
func (p *KeywordParser) Parse(input string) Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Command{}
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			cmd := rule.cmd
			cmd.Raw = trimmed
			p.log.Debug("parsed %q as %s", trimmed, cmd.Action)
			return cmd
		}
	}

	// Fall back to the action's canonical name, e.g. "add_5".
	if a := domain.ActionFromString(strings.ToLower(trimmed)); a != domain.ActionNone {
		return Command{Action: a, Raw: trimmed}
	}

	p.log.Debug("no match for %q", trimmed)
	return Command{Raw: trimmed}
}

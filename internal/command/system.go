package command

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// System recognizes and executes voice commands against the static catalog.
type System struct {
	commands []VoiceCommand
	index    map[string]int
}

// NewSystem compiles the catalog. A malformed pattern is a configuration
// error and aborts initialization.
func NewSystem() (*System, error) {
	commands := make([]VoiceCommand, len(catalog))
	index := make(map[string]int, len(catalog))

	for i, cmd := range catalog {
		compiled := make([]*regexp.Regexp, 0, len(cmd.Patterns))
		for _, p := range cmd.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("command %q: invalid pattern %q: %w", cmd.Name, p, err)
			}
			compiled = append(compiled, re)
		}
		cmd.compiled = compiled
		commands[i] = cmd
		index[cmd.Name] = i
	}

	return &System{commands: commands, index: index}, nil
}

// MustSystem is NewSystem that panics on a malformed catalog. Startup only.
func MustSystem() *System {
	s, err := NewSystem()
	if err != nil {
		panic(err)
	}
	return s
}

// Recognize matches transcribed text against the catalog and returns the
// first matching command name in table order. Pure and deterministic.
func (s *System) Recognize(text string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return "", false
	}

	for _, cmd := range s.commands {
		for _, re := range cmd.compiled {
			if re.MatchString(normalized) {
				return cmd.Name, true
			}
		}
	}
	return "", false
}

// Execute maps a recognized command name to its action descriptor. The
// context payload is forwarded untouched. An unknown name yields a failure
// result; a known but unmapped name yields a soft "not implemented" success
// so callers can degrade gracefully.
func (s *System) Execute(name string, context map[string]interface{}) Result {
	if _, ok := s.index[name]; !ok {
		return Result{
			Success: false,
			Error:   fmt.Sprintf("Unknown command: %s", name),
		}
	}

	act, ok := actions[name]
	if !ok {
		return Result{
			Success:  true,
			Command:  name,
			Action:   "unknown",
			Response: "Command not implemented",
			Context:  context,
		}
	}

	return Result{
		Success:  true,
		Command:  name,
		Action:   act.name,
		Params:   act.params,
		Response: act.response,
		Context:  context,
	}
}

// Available lists catalog commands, optionally filtered by category.
func (s *System) Available(category string) []VoiceCommand {
	out := make([]VoiceCommand, 0, len(s.commands))
	for _, cmd := range s.commands {
		if category != "" && cmd.Category != category {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

// Help renders a human readable listing of all commands grouped by category.
func (s *System) Help() string {
	byCategory := make(map[string][]VoiceCommand)
	for _, cmd := range s.commands {
		byCategory[cmd.Category] = append(byCategory[cmd.Category], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	b.WriteString("Available Voice Commands:\n\n")
	for _, category := range categories {
		b.WriteString("**" + strings.ToUpper(category) + "**\n")
		for _, cmd := range byCategory[category] {
			b.WriteString(fmt.Sprintf("- %s: '%s'\n", cmd.Description, cmd.Example))
		}
		b.WriteString("\n")
	}
	return b.String()
}

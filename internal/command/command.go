package command

import "regexp"

// VoiceCommand is an immutable command definition. Patterns are tried in
// order; the catalog order decides precedence between commands.
type VoiceCommand struct {
	Name        string   `json:"command"`
	Patterns    []string `json:"patterns"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Example     string   `json:"example"`

	compiled []*regexp.Regexp
}

// Result describes what a recognized command should trigger.
type Result struct {
	Success  bool                   `json:"success"`
	Command  string                 `json:"command,omitempty"`
	Action   string                 `json:"action,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
	Response string                 `json:"response,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// action maps a command name to its descriptor template.
type action struct {
	name     string
	params   map[string]interface{}
	response string
}

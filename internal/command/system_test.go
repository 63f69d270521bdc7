package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystemCompilesCatalog(t *testing.T) {
	s, err := NewSystem()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.commands, len(catalog))
}

func TestEveryActionHasCatalogEntry(t *testing.T) {
	s := MustSystem()
	for name := range actions {
		_, ok := s.index[name]
		assert.True(t, ok, "action %q has no catalog entry", name)
	}
}

func TestRecognize(t *testing.T) {
	s := MustSystem()

	tests := []struct {
		text    string
		command string
		matched bool
	}{
		{"Can you slow down please?", "slow_down", true},
		{"I'm totally lost here", "confused", true},
		{"pause the session", "pause", true},
		{"  HANG ON  ", "pause", true},
		{"can you repeat that", "repeat", true},
		{"give me an example", "example", true},
		{"lets practice", "practice", true},
		{"show me the answer", "answer", true},
		{"how am i doing", "progress", true},
		{"the weather is nice today", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		name, ok := s.Recognize(tt.text)
		assert.Equal(t, tt.matched, ok, "text: %q", tt.text)
		assert.Equal(t, tt.command, name, "text: %q", tt.text)
	}
}

func TestRecognizeWordBoundaries(t *testing.T) {
	s := MustSystem()

	// "pause" inside "pauseless" must not match.
	name, ok := s.Recognize("this is pauseless prose")
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestRecognizeDeterministic(t *testing.T) {
	s := MustSystem()

	first, ok := s.Recognize("can we move on")
	require.True(t, ok)
	for i := 0; i < 50; i++ {
		name, ok := s.Recognize("can we move on")
		require.True(t, ok)
		require.Equal(t, first, name)
	}
}

func TestExecuteSlowDown(t *testing.T) {
	s := MustSystem()

	res := s.Execute("slow_down", map[string]interface{}{})
	assert.True(t, res.Success)
	assert.Equal(t, "slow_down", res.Command)
	assert.Equal(t, "adjust_pace", res.Action)
	assert.Equal(t, map[string]interface{}{"slower": true}, res.Params)
	assert.Equal(t, "Slowing down...", res.Response)
	assert.Empty(t, res.Error)
}

func TestExecuteUnknownCommand(t *testing.T) {
	s := MustSystem()

	res := s.Execute("nonexistent_command", map[string]interface{}{})
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown command: nonexistent_command", res.Error)
	assert.Empty(t, res.Action)
}

func TestExecuteForwardsContext(t *testing.T) {
	s := MustSystem()

	ctx := map[string]interface{}{"subtopic": "fractions"}
	res := s.Execute("hint", ctx)
	assert.True(t, res.Success)
	assert.Equal(t, ctx, res.Context)
}

func TestAvailableFiltersByCategory(t *testing.T) {
	s := MustSystem()

	all := s.Available("")
	assert.Len(t, all, len(catalog))

	pace := s.Available("pace")
	require.Len(t, pace, 2)
	for _, cmd := range pace {
		assert.Equal(t, "pace", cmd.Category)
	}

	none := s.Available("no-such-category")
	assert.Empty(t, none)
}

func TestHelpGroupsByCategory(t *testing.T) {
	s := MustSystem()

	help := s.Help()
	assert.Contains(t, help, "Available Voice Commands:")
	assert.Contains(t, help, "**CONTROL**")
	assert.Contains(t, help, "**PACE**")
	assert.Contains(t, help, "Slow down the teaching pace")
}

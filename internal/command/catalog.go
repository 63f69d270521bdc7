package command

// catalog is the static table of recognizable voice commands. It is an
// ordered slice on purpose: Recognize returns the first command whose any
// pattern matches, so precedence is fixed by this table rather than by map
// iteration order.
var catalog = []VoiceCommand{
	// Session control
	{
		Name: "pause",
		Patterns: []string{
			`\b(pause|stop|wait)\b`,
			`\bhang on\b`,
			`\bgive me (a )?second\b`,
		},
		Description: "Pause the tutoring session",
		Category:    "control",
		Example:     "Pause the session",
	},
	{
		Name: "resume",
		Patterns: []string{
			`\b(resume|continue|go on)\b`,
			`\blets? continue\b`,
			`\bkeep going\b`,
		},
		Description: "Resume the tutoring session",
		Category:    "control",
		Example:     "Continue please",
	},
	{
		Name: "repeat",
		Patterns: []string{
			`\b(repeat|say (that )?again)\b`,
			`\bcan you repeat\b`,
			`\bwhat did you say\b`,
			`\bdidnt (catch|hear) that\b`,
		},
		Description: "Repeat the last explanation",
		Category:    "control",
		Example:     "Can you repeat that?",
	},

	// Pace control
	{
		Name: "slow_down",
		Patterns: []string{
			`\b(slow down|go slower|too fast)\b`,
			`\byou['’]?re going too (fast|quick)\b`,
			`\bslower please\b`,
		},
		Description: "Slow down the teaching pace",
		Category:    "pace",
		Example:     "Slow down please",
	},
	{
		Name: "speed_up",
		Patterns: []string{
			`\b(speed up|go faster|too slow)\b`,
			`\bfaster please\b`,
			`\byou['’]?re going too slow\b`,
		},
		Description: "Speed up the teaching pace",
		Category:    "pace",
		Example:     "Can you go faster?",
	},

	// Content navigation
	{
		Name: "example",
		Patterns: []string{
			`\bgive (me )?(an )?example\b`,
			`\bshow (me )?(an )?example\b`,
			`\bcan (you|i) (have|get|see) (an )?example\b`,
		},
		Description: "Request an example",
		Category:    "content",
		Example:     "Give me an example",
	},
	{
		Name: "summary",
		Patterns: []string{
			`\b(summarize|summary|recap)\b`,
			`\bwhat did we (cover|learn)\b`,
			`\bsummarize (what|everything) we (covered|learned)\b`,
		},
		Description: "Get a summary of what was covered",
		Category:    "content",
		Example:     "Summarize what we learned",
	},
	{
		Name: "next_topic",
		Patterns: []string{
			`\b(next (topic|subject)|move on|skip)\b`,
			`\bcan we move (on|forward)\b`,
			`\blets? (do|try) (the )?next (one|topic)\b`,
		},
		Description: "Move to the next topic",
		Category:    "navigation",
		Example:     "Next topic please",
	},
	{
		Name: "previous_topic",
		Patterns: []string{
			`\b(previous|last|go back) (topic|subject)\b`,
			`\bgo back to (the )?(last|previous)\b`,
		},
		Description: "Go back to the previous topic",
		Category:    "navigation",
		Example:     "Go back to the previous topic",
	},

	// Help and clarification
	{
		Name: "confused",
		Patterns: []string{
			`\b(im? |i am )?(confused|lost|dont understand)\b`,
			`\bthis (is |makes )no sense\b`,
			`\bi dont get (it|this)\b`,
		},
		Description: "Signal confusion and request clarification",
		Category:    "help",
		Example:     "I'm confused",
	},
	{
		Name: "clarify",
		Patterns: []string{
			`\b(clarify|explain (again|more|better))\b`,
			`\bcan you (clarify|elaborate)\b`,
			`\bexplain (that|this) differently\b`,
		},
		Description: "Request clarification or different explanation",
		Category:    "help",
		Example:     "Can you clarify that?",
	},
	{
		Name: "hint",
		Patterns: []string{
			`\b(give (me )?a hint|need a hint)\b`,
			`\bcan (you|i) (have|get) a hint\b`,
		},
		Description: "Request a hint for a problem",
		Category:    "help",
		Example:     "Give me a hint",
	},

	// Practice and testing
	{
		Name: "practice",
		Patterns: []string{
			`\b(practice|quiz|test) (me|question)\b`,
			`\bgive me (a )?(practice |quiz )?question\b`,
			`\blets? practice\b`,
		},
		Description: "Request a practice question",
		Category:    "practice",
		Example:     "Give me a practice question",
	},
	{
		Name: "answer",
		Patterns: []string{
			`\b(show|tell|give) (me )?(the )?answer\b`,
			`\bwhat['’]?s the answer\b`,
			`\bshow solution\b`,
		},
		Description: "Show the answer to a problem",
		Category:    "practice",
		Example:     "Show me the answer",
	},

	// Progress and stats
	{
		Name: "progress",
		Patterns: []string{
			`\b(my |show )?(progress|stats|statistics)\b`,
			`\bhow am i doing\b`,
			`\bwhat['’]?s my (score|progress)\b`,
		},
		Description: "Show learning progress",
		Category:    "stats",
		Example:     "Show my progress",
	},

	// Session management
	{
		Name: "end_session",
		Patterns: []string{
			`\b(end|finish|stop) (the )?session\b`,
			`\b(im? |i am )done\b`,
			`\blets? (finish|end|stop)\b`,
		},
		Description: "End the tutoring session",
		Category:    "control",
		Example:     "End the session",
	},
}

// actions maps command names to their descriptors. A catalog entry without a
// mapping here falls back to the "not implemented" descriptor in Execute.
var actions = map[string]action{
	"pause":          {name: "pause_session", response: "Session paused. Say 'continue' when ready."},
	"resume":         {name: "resume_session", response: "Continuing..."},
	"repeat":         {name: "repeat_last", response: "Let me repeat that..."},
	"slow_down":      {name: "adjust_pace", params: map[string]interface{}{"slower": true}, response: "Slowing down..."},
	"speed_up":       {name: "adjust_pace", params: map[string]interface{}{"slower": false}, response: "Speeding up..."},
	"example":        {name: "provide_example", response: "Here's an example..."},
	"summary":        {name: "summarize", response: "Let me summarize what we've covered..."},
	"next_topic":     {name: "next_topic", response: "Moving to the next topic..."},
	"previous_topic": {name: "previous_topic", response: "Going back to the previous topic..."},
	"confused":       {name: "address_confusion", response: "Let me explain this differently..."},
	"clarify":        {name: "clarify", response: "Let me clarify that..."},
	"hint":           {name: "give_hint", response: "Here's a hint..."},
	"practice":       {name: "generate_practice", response: "Here's a practice question..."},
	"answer":         {name: "show_answer", response: "The answer is..."},
	"progress":       {name: "show_progress", response: "Here's your progress..."},
	"end_session":    {name: "end_session", response: "Ending session. Great work today!"},
}

// Package prompts holds the instruction strings handed to the voice agent.
package prompts

import "fmt"

// Instruction builds the tutoring system prompt for a session.
func Instruction(subject, topic, style string) string {
	if subject == "" {
		subject = "general studies"
	}
	if style == "" {
		style = "encouraging and patient"
	}
	base := fmt.Sprintf(
		"You are an expert %s tutor. Your teaching style is %s. "+
			"Explain concepts step by step, check understanding frequently, "+
			"and adapt your pace to the student. Keep spoken responses short "+
			"and conversational since they will be read aloud.",
		subject, style)
	if topic != "" {
		base += fmt.Sprintf(" Today's session focuses on: %s.", topic)
	}
	return base
}

// Welcome builds the opening line spoken when a student joins.
func Welcome(name, topic string) string {
	if name == "" {
		name = "there"
	}
	if topic == "" {
		return fmt.Sprintf("Hi %s! I'm your tutor for today. What would you like to learn about?", name)
	}
	return fmt.Sprintf("Hi %s! Ready to dive into %s? Let me know when you'd like to start.", name, topic)
}

// Lookup builds the retrieval prompt used when the agent needs background
// material on a topic.
func Lookup(topic string) string {
	return fmt.Sprintf(
		"Provide a concise factual overview of %q suitable for a tutoring "+
			"session: key definitions, the two or three most important ideas, "+
			"and one worked example.", topic)
}

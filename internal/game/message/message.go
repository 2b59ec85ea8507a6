// Package message implements the player-facing message log.
package message

import (
	"fmt"
	"strings"
)

// Color is a semantic colour tag; the UI maps tags to terminal colours.
type Color string

const (
	White           Color = "white"
	PlayerAttack    Color = "player_atk"
	EnemyAttack     Color = "enemy_atk"
	NeedsTarget     Color = "needs_target"
	StatusEffect    Color = "status_effect_applied"
	Descend         Color = "descend"
	PlayerDie       Color = "player_die"
	EnemyDie        Color = "enemy_die"
	Invalid         Color = "invalid"
	Impossible      Color = "impossible"
	Error           Color = "error"
	Welcome         Color = "welcome_text"
	HealthRecovered Color = "health_recovered"
	ManaUse         Color = "mp_use"
)

// Message is one log line. Count > 1 means the same text arrived repeatedly.
type Message struct {
	Text  string
	Color Color
	Count int
}

// FullText renders the text with its repeat counter, e.g. "Hit (x3)".
func (m Message) FullText() string {
	if m.Count > 1 {
		return fmt.Sprintf("%s (x%d)", m.Text, m.Count)
	}
	return m.Text
}

// Sink accepts log lines.
type Sink interface {
	Add(text string, color Color)
}

// Log is an append-only message history.
//
// Invariant: no two consecutive messages share the same text.
type Log struct {
	Messages []Message
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Add appends text, stacking it onto the last message when identical.
func (l *Log) Add(text string, color Color) {
	if n := len(l.Messages); n > 0 && l.Messages[n-1].Text == text {
		l.Messages[n-1].Count++
		return
	}
	l.Messages = append(l.Messages, Message{Text: text, Color: color, Count: 1})
}

// Last returns up to n most recent messages, oldest first.
func (l *Log) Last(n int) []Message {
	if n <= 0 {
		return nil
	}
	start := len(l.Messages) - n
	if start < 0 {
		start = 0
	}
	out := make([]Message, len(l.Messages)-start)
	copy(out, l.Messages[start:])
	return out
}

// Len returns the number of distinct messages.
func (l *Log) Len() int {
	return len(l.Messages)
}

// Wrap splits text into lines no wider than width, breaking on spaces.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}

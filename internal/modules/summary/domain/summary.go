// Package domain formats progress summaries. Everything here is pure
// string building over values handed in by the caller.
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxFindingRunes caps the digest of pasted findings.
const MaxFindingRunes = 160

type StageLine struct {
	ID       string
	Name     string
	Hours    float64
	Goal     float64
	Progress float64
	// Undefined marks a stage whose progress cannot be computed.
	Undefined bool
}

type TimerLine struct {
	StageName string
	Author    string
	Elapsed   string
}

type NoteLine struct {
	Author string
	Text   string
}

type Report struct {
	Audience    string
	GeneratedAt time.Time
	Findings    string
	Stages      []StageLine
	Timer       *TimerLine
	LastNote    *NoteLine
}

// Digest reduces free text to its first sentence, whitespace collapsed and
// trimmed to MaxFindingRunes.
func Digest(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + utf8.RuneLen(r)
		if next == len(text) || text[next] == ' ' {
			text = text[:next]
			break
		}
	}
	if utf8.RuneCountInString(text) <= MaxFindingRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:MaxFindingRunes-1])) + "…"
}

func (r Report) StageIDs() []string {
	out := make([]string, 0, len(r.Stages))
	for _, stage := range r.Stages {
		out = append(out, stage.ID)
	}
	return out
}

func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Summary for %s\n\n", r.Audience)
	fmt.Fprintf(&b, "_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if r.Findings != "" {
		fmt.Fprintf(&b, "**Findings:** %s\n\n", r.Findings)
	}

	b.WriteString("### Stages\n\n")
	for _, stage := range r.Stages {
		if stage.Undefined {
			fmt.Fprintf(&b, "- %s: %s h logged, no goal set\n", stage.Name, formatHours(stage.Hours))
			continue
		}
		fmt.Fprintf(&b, "- %s: %s / %s h (%.1f%%)\n", stage.Name, formatHours(stage.Hours), formatHours(stage.Goal), stage.Progress*100)
	}

	b.WriteString("\n### Timer\n\n")
	if r.Timer == nil {
		b.WriteString("Idle.\n")
	} else if r.Timer.Author != "" {
		fmt.Fprintf(&b, "Running on %s for %s (started by %s).\n", r.Timer.StageName, r.Timer.Elapsed, r.Timer.Author)
	} else {
		fmt.Fprintf(&b, "Running on %s for %s.\n", r.Timer.StageName, r.Timer.Elapsed)
	}

	b.WriteString("\n### Last note\n\n")
	if r.LastNote == nil {
		b.WriteString("No notes yet.\n")
	} else {
		fmt.Fprintf(&b, "> **%s:** %s\n", r.LastNote.Author, r.LastNote.Text)
	}
	return b.String()
}

func formatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

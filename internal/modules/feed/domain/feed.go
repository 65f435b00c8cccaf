package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "kitchen/internal/platform/errors"
)

// Workload is a collaborator's self-reported load.
type Workload string

const (
	WorkloadLight   Workload = "light"
	WorkloadSteady  Workload = "steady"
	WorkloadBusy    Workload = "busy"
	WorkloadSwamped Workload = "swamped"
)

var workloads = []Workload{WorkloadLight, WorkloadSteady, WorkloadBusy, WorkloadSwamped}

// Workloads lists the accepted values from lightest to heaviest.
func Workloads() []Workload {
	out := make([]Workload, len(workloads))
	copy(out, workloads)
	return out
}

func (w Workload) Validate() error {
	for _, known := range workloads {
		if w == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unsupported workload %q", apperrors.ErrInvalidInput, string(w))
}

// Next cycles to the following workload, wrapping after the heaviest.
func (w Workload) Next() Workload {
	for i, known := range workloads {
		if w == known {
			return workloads[(i+1)%len(workloads)]
		}
	}
	return workloads[0]
}

// Note is an immutable feed entry. Seq is its 1-based position.
type Note struct {
	Seq      int
	Author   string
	Text     string
	PostedAt time.Time
}

type MemberWorkload struct {
	Member   string
	Workload Workload
}

// Feed is the append-only note sequence plus the workload board.
// An empty Members list accepts any author.
type Feed struct {
	Members   []string
	Notes     []Note
	Workloads map[string]Workload
}

func (f *Feed) Post(author, text string, now time.Time) (Note, error) {
	member, err := f.resolveMember(author)
	if err != nil {
		return Note{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Note{}, fmt.Errorf("%w: note text is required", apperrors.ErrInvalidInput)
	}
	note := Note{Seq: len(f.Notes) + 1, Author: member, Text: text, PostedAt: now}
	f.Notes = append(f.Notes, note)
	return note, nil
}

// Tail returns the last limit notes in insertion order; limit <= 0 returns all.
func (f *Feed) Tail(limit int) []Note {
	notes := f.Notes
	if limit > 0 && len(notes) > limit {
		notes = notes[len(notes)-limit:]
	}
	out := make([]Note, len(notes))
	copy(out, notes)
	return out
}

func (f *Feed) Last() (Note, error) {
	if len(f.Notes) == 0 {
		return Note{}, fmt.Errorf("%w: feed is empty", apperrors.ErrNotFound)
	}
	return f.Notes[len(f.Notes)-1], nil
}

func (f *Feed) SetWorkload(member string, value Workload) (MemberWorkload, error) {
	name, err := f.resolveMember(member)
	if err != nil {
		return MemberWorkload{}, err
	}
	if err := value.Validate(); err != nil {
		return MemberWorkload{}, err
	}
	if f.Workloads == nil {
		f.Workloads = map[string]Workload{}
	}
	f.Workloads[name] = value
	return MemberWorkload{Member: name, Workload: value}, nil
}

// Board lists workloads sorted by member name.
func (f *Feed) Board() []MemberWorkload {
	out := make([]MemberWorkload, 0, len(f.Workloads))
	for member, value := range f.Workloads {
		out = append(out, MemberWorkload{Member: member, Workload: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Member < out[j].Member })
	return out
}

func (f *Feed) resolveMember(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: author is required", apperrors.ErrInvalidInput)
	}
	if len(f.Members) == 0 {
		return name, nil
	}
	for _, member := range f.Members {
		if strings.EqualFold(member, name) {
			return member, nil
		}
	}
	return "", fmt.Errorf("%w: %q is not a member (members: %s)", apperrors.ErrInvalidInput, name, strings.Join(f.Members, ", "))
}

package dto

import "time"

type PostInput struct {
	Author string
	Text   string
}

type ListInput struct {
	Limit int
}

type WorkloadInput struct {
	Member string
	Value  string
}

type NoteOutput struct {
	Seq      int
	Author   string
	Text     string
	PostedAt time.Time
}

type WorkloadOutput struct {
	Member string
	Value  string
}

type BoardOutput struct {
	Members   []string
	Allowed   []string
	Workloads []WorkloadOutput
}

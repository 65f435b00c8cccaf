package dto

import "time"

type SummarizeInput struct {
	Findings string
	Audience string
}

type SummaryOutput struct {
	Audience    string
	GeneratedAt time.Time
	Stages      []string
	Markdown    string
}

type ExportOutput struct {
	Summary      SummaryOutput
	Path         string
	ProgressPath string
}

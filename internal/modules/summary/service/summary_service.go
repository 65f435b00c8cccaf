package service

import (
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	feeddto "kitchen/internal/modules/feed/dto"
	ledgerdto "kitchen/internal/modules/ledger/dto"
	"kitchen/internal/modules/summary/domain"
	"kitchen/internal/platform/clock"
	"kitchen/internal/platform/logging"
)

type SummaryService struct {
	clock   clock.Clock
	members []string
	logger  hclog.Logger
}

func NewSummaryService(clock clock.Clock, members []string, logger hclog.Logger) *SummaryService {
	return &SummaryService{
		clock:   clock,
		members: append([]string(nil), members...),
		logger:  logging.OrNull(logger).Named("summary"),
	}
}

func (s *SummaryService) Logger() hclog.Logger { return s.logger }

// DefaultAudience joins the configured members, e.g. "Cathy/Helen".
func (s *SummaryService) DefaultAudience() string {
	if len(s.members) == 0 {
		return "the team"
	}
	return strings.Join(s.members, "/")
}

// Build assembles a report. display and last may be nil.
func (s *SummaryService) Build(findings, audience string, overview ledgerdto.OverviewOutput, display *ledgerdto.DisplayOutput, last *feeddto.NoteOutput) domain.Report {
	audience = strings.TrimSpace(audience)
	if audience == "" {
		audience = s.DefaultAudience()
	}
	report := domain.Report{
		Audience:    audience,
		GeneratedAt: s.clock.Now(),
		Findings:    domain.Digest(findings),
		Stages:      make([]domain.StageLine, 0, len(overview.Stages)),
	}
	for _, stage := range overview.Stages {
		report.Stages = append(report.Stages, domain.StageLine{
			ID:        stage.ID,
			Name:      stage.Name,
			Hours:     stage.Hours,
			Goal:      stage.Goal,
			Progress:  stage.Progress,
			Undefined: stage.ProgressErr != "",
		})
	}
	if display != nil && display.Running {
		report.Timer = &domain.TimerLine{StageName: display.StageName, Author: display.Author, Elapsed: display.Text}
	}
	if last != nil {
		report.LastNote = &domain.NoteLine{Author: last.Author, Text: last.Text}
	}
	return report
}

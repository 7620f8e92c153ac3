package strength

import (
	"context"
	"errors"
	"fmt"

	"code.cloudfoundry.org/lager"
	"github.com/google/uuid"

	"github.com/bryanwahyu/passwise/internal/application"
	"github.com/bryanwahyu/passwise/internal/domain/analyst"
	domain "github.com/bryanwahyu/passwise/internal/domain/strength"
)

// Service implements the analyze / generate use-cases.
// Service holds no mutable state and is safe for concurrent use.
type Service struct {
	Lookup   domain.CompromisedLookup
	Reasoner domain.Reasoner
	Records  analyst.Repository // optional
	Source   domain.Source
	Clock    application.Clock
	Policy   GenerationPolicy
	Logger   lager.Logger
}

// Mode decides what happens when a generated password misses the caller's constraints.
type Mode string

const (
	// ModeEnforce loops until the constraints hold and fails after MaxAttempts.
	ModeEnforce Mode = "enforce"
	// ModeAdvisory returns the first candidate and notes any miss.
	ModeAdvisory Mode = "advisory"
)

// GenerationPolicy configures Generate.
type GenerationPolicy struct {
	Mode        Mode
	MaxAttempts int
}

const defaultMaxAttempts = 10

// Analyze runs the full pipeline for one password.
func (s *Service) Analyze(ctx context.Context, tenant, password string) (*domain.Report, error) {
	eval, err := domain.Evaluate(password)
	if err != nil {
		return nil, err
	}
	logger := s.Logger.Session("analyze", lager.Data{"tenant": tenant, "length": eval.Length})

	compromised, err := s.Lookup.Contains(ctx, password)
	if err != nil {
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		// breach backend outage must not fail the analysis
		logger.Error("breach-lookup-failed", err)
		compromised = false
	}

	var improvement *domain.Improvement
	if imp, ok := domain.NewImprover(s.source()).Improve(password, eval.Score, eval.Classes, eval.Length); ok {
		improvement = &imp
	}

	reasoning, err := s.Reasoner.Reason(ctx, eval.ReasonInput(compromised))
	if err != nil {
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		logger.Error("reasoner-failed", err)
		reasoning = domain.ComposeReasoning(eval.ReasonInput(compromised))
	}

	report := eval.Report(compromised, reasoning, improvement)
	s.record(ctx, logger, tenant, eval, report)

	logger.Info("analyzed", lager.Data{
		"score":       report.Score,
		"patterns":    len(report.PatternsDetected),
		"compromised": report.IsCompromised,
		"improved":    report.Improved(),
	})
	return report, nil
}

func (s *Service) record(ctx context.Context, logger lager.Logger, tenant string, eval domain.Evaluation, r *domain.Report) {
	if s.Records == nil {
		return
	}
	patterns := make([]string, 0, len(r.PatternsDetected))
	for _, p := range r.PatternsDetected {
		patterns = append(patterns, string(p))
	}
	a := &analyst.Analysis{
		ID:           analyst.AnalysisID(uuid.New().String()),
		TenantID:     tenant,
		Length:       eval.Length,
		Score:        r.Score,
		TimeToCrack:  string(r.TimeToCrack),
		AttackVector: r.AttackVector,
		Patterns:     patterns,
		Compromised:  r.IsCompromised,
		Improved:     r.Improved(),
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Records.Save(ctx, a); err != nil {
		logger.Error("record-save-failed", err, lager.Data{"id": a.ID})
	}
}

// Generate produces a new password under the configured policy.
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	if req.MinScore < 0 || req.MinScore > domain.MaxScore {
		return domain.GenerationResult{}, fmt.Errorf("%w: min_score must be between 0 and %d", domain.ErrInvalidRequest, domain.MaxScore)
	}
	if req.TimeThresholdDays < 0 {
		return domain.GenerationResult{}, fmt.Errorf("%w: time_threshold_days must not be negative", domain.ErrInvalidRequest)
	}

	logger := s.Logger.Session("generate", lager.Data{
		"min-score":      req.MinScore,
		"threshold-days": req.TimeThresholdDays,
		"mode":           s.Policy.Mode,
	})
	gen := &domain.Generator{Source: s.source()}

	if s.Policy.Mode == ModeAdvisory {
		res := candidate(gen)
		res.Attempts = 1
		if !meets(res, req) {
			res.Note = "Constraints are advisory: this password does not meet the requested score or crack-time threshold."
			logger.Info("constraints-advisory-miss", lager.Data{"score": res.Score})
		}
		return res, nil
	}

	if req.MinScore > domain.ReachableMaxScore {
		logger.Info("constraints-unreachable")
		return domain.GenerationResult{}, fmt.Errorf("%w: min_score %d exceeds the maximum reachable score %d",
			domain.ErrConstraintsUnmet, req.MinScore, domain.ReachableMaxScore)
	}
	if horizon := domain.EstimateCrackTime(domain.ReachableMaxScore).HorizonDays(); req.TimeThresholdDays > horizon {
		logger.Info("constraints-unreachable")
		return domain.GenerationResult{}, fmt.Errorf("%w: time_threshold_days %d exceeds the longest reachable horizon of %d days",
			domain.ErrConstraintsUnmet, req.TimeThresholdDays, horizon)
	}

	attempts := s.Policy.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	for i := 1; i <= attempts; i++ {
		if err := ctx.Err(); err != nil {
			return domain.GenerationResult{}, context.Cause(ctx)
		}
		res := candidate(gen)
		if meets(res, req) {
			res.Attempts = i
			logger.Debug("generated", lager.Data{"attempts": i, "score": res.Score})
			return res, nil
		}
	}
	logger.Info("constraints-unmet", lager.Data{"attempts": attempts})
	return domain.GenerationResult{}, fmt.Errorf("%w after %d attempts", domain.ErrConstraintsUnmet, attempts)
}

// List returns a page of redacted analysis records.
func (s *Service) List(ctx context.Context, tenant string, page, pageSize int) (*analyst.PaginatedResult, error) {
	out := &analyst.PaginatedResult{Data: []*analyst.Analysis{}, Page: page, PageSize: pageSize}
	if s.Records == nil {
		return out, nil
	}
	list, err := s.Records.Paginate(ctx, tenant, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	if list != nil {
		out.Data = list
	}
	return out, nil
}

func (s *Service) source() domain.Source {
	if s.Source == nil {
		return domain.CryptoSource{}
	}
	return s.Source
}

func candidate(gen *domain.Generator) domain.GenerationResult {
	pwd := gen.Generate()
	// generated passwords are never empty
	eval, _ := domain.Evaluate(pwd)
	return domain.GenerationResult{Password: pwd, Score: eval.Score, TimeToCrack: eval.TimeToCrack}
}

func meets(r domain.GenerationResult, req domain.GenerationRequest) bool {
	return r.Score >= req.MinScore && r.TimeToCrack.HorizonDays() >= req.TimeThresholdDays
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrEmptyPassword) || errors.Is(err, domain.ErrInvalidRequest)
}

package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/liveticker/internal/platform/logging"
	"github.com/riskibarqy/liveticker/internal/usecase"
	"github.com/robfig/cron/v3"
)

type NewsCollector interface {
	Collect(ctx context.Context) (usecase.NewsResult, error)
}

type HistoryCurator interface {
	Curate(ctx context.Context) (usecase.HistoryResult, error)
}

type ScoreReconciler interface {
	Reconcile(ctx context.Context, input usecase.ReconcileInput) (usecase.ReconcileResult, error)
}

type ScheduleConfig struct {
	Location              *time.Location
	NewsSpec              string
	HistorySpec           string
	ReconcileSpec         string
	ReconcileCompetitions []string
	RunOnce               bool
}

// Scheduler runs the news, history and optional reconcile jobs on cron specs.
// A job that is still running when its next tick fires skips that tick. News and
// history both rewrite the digest and never run at the same time.
type Scheduler struct {
	cron       *cron.Cron
	digestMu   sync.Mutex
	cfg        ScheduleConfig
	news       NewsCollector
	history    HistoryCurator
	reconciler ScoreReconciler
	logger     *logging.Logger
}

func NewScheduler(
	cfg ScheduleConfig,
	news NewsCollector,
	history HistoryCurator,
	reconciler ScoreReconciler,
	logger *logging.Logger,
) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	cronLogger := logging.CronLogger(logger)
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		cfg:        cfg,
		news:       news,
		history:    history,
		reconciler: reconciler,
		logger:     logger,
	}

	if _, err := s.cron.AddFunc(cfg.NewsSpec, s.job("news", s.runNews)); err != nil {
		return nil, fmt.Errorf("schedule news job %q: %w", cfg.NewsSpec, err)
	}
	if _, err := s.cron.AddFunc(cfg.HistorySpec, s.job("history", s.runHistory)); err != nil {
		return nil, fmt.Errorf("schedule history job %q: %w", cfg.HistorySpec, err)
	}
	if spec := strings.TrimSpace(cfg.ReconcileSpec); spec != "" && reconciler != nil {
		if _, err := s.cron.AddFunc(spec, s.job("reconcile", s.runReconcile)); err != nil {
			return nil, fmt.Errorf("schedule reconcile job %q: %w", spec, err)
		}
	}

	return s, nil
}

// Run performs one news and one history run, then keeps the cron loop alive until
// ctx is cancelled. With RunOnce it returns after the initial runs.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "initial run started")
	s.job("news", s.runNews)()
	s.job("history", s.runHistory)()

	if s.cfg.RunOnce {
		s.logger.InfoContext(ctx, "RUN_ONCE set, scheduler exits after initial run")
		return nil
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "scheduler started",
		"timezone", s.cfg.Location.String(),
		"jobs", len(s.cron.Entries()),
	)

	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) job(name string, run func(context.Context) error) func() {
	return func() {
		start := time.Now()
		if err := run(context.Background()); err != nil {
			s.logger.Error("scheduled job failed", "job", name, "error", err)
			return
		}
		s.logger.Info("scheduled job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
	}
}

func (s *Scheduler) runNews(ctx context.Context) error {
	s.digestMu.Lock()
	defer s.digestMu.Unlock()
	_, err := s.news.Collect(ctx)
	return err
}

func (s *Scheduler) runHistory(ctx context.Context) error {
	s.digestMu.Lock()
	defer s.digestMu.Unlock()
	_, err := s.history.Curate(ctx)
	return err
}

func (s *Scheduler) runReconcile(ctx context.Context) error {
	var failed []string
	for _, code := range s.cfg.ReconcileCompetitions {
		result, err := s.reconciler.Reconcile(ctx, usecase.ReconcileInput{Competition: code})
		if err != nil {
			s.logger.ErrorContext(ctx, "reconcile failed", "competition", code, "error", err)
			failed = append(failed, code)
			continue
		}
		s.logger.InfoContext(ctx, "reconcile finished",
			"competition", code,
			"updated", result.Updated,
			"unresolved", len(result.Unresolved),
		)
	}
	if len(failed) > 0 {
		return fmt.Errorf("reconcile failed for %s", strings.Join(failed, ", "))
	}
	return nil
}

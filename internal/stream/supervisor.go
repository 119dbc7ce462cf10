// Package stream drives the new-submission poll loop and owns the retry
// policy around it.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtowers/approach-control/internal/domain"
	"github.com/mtowers/approach-control/internal/metrics"
	"github.com/mtowers/approach-control/internal/reddit"
)

// SubmissionSource is the feed surface the supervisor consumes.
type SubmissionSource interface {
	// Authenticate establishes (or replaces) the session used by subsequent
	// reads.
	Authenticate(ctx context.Context) error

	// NewSubmissions returns the newest submissions in a subreddit, newest
	// first.
	NewSubmissions(ctx context.Context, subreddit string, limit int) ([]domain.Post, error)
}

// PostHandler processes one submission.
type PostHandler interface {
	Process(ctx context.Context, post *domain.Post) (domain.Outcome, error)
}

// seenCapacity bounds the per-session set of already-dispatched fullnames.
// This is not the duplicate guard; it only keeps one polling session from
// re-dispatching submissions it already handed to the processor.
const seenCapacity = 512

const (
	defaultPollInterval = 2 * time.Second
	defaultFetchLimit   = 10
	defaultAuthCooldown = 60 * time.Second
)

// Config controls the supervisor's polling and recovery behavior.
type Config struct {
	// Subreddit is the community whose new-submission stream is watched.
	Subreddit string

	// PollInterval paces listing reads. Defaults to 2s.
	PollInterval time.Duration

	// FetchLimit bounds items per poll. Defaults to 10.
	FetchLimit int

	// AuthCooldown is how long to sleep before re-authenticating after an
	// expired session or an unknown error. Defaults to 60s.
	AuthCooldown time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = defaultFetchLimit
	}
	if c.AuthCooldown <= 0 {
		c.AuthCooldown = defaultAuthCooldown
	}
	return c
}

// Supervisor polls the new-submission stream, dispatches each unseen
// submission to the handler, and recovers from the retryable error classes:
// rate limiting, session expiry, upstream 5xx trouble, and anything else
// unexpected. Failed authentication is fatal so that permanently bad
// credentials cannot loop forever.
type Supervisor struct {
	source    SubmissionSource
	handler   PostHandler
	cfg       Config
	limiter   *rate.Limiter
	logger    *slog.Logger
	collector *metrics.Collector

	seen      map[string]struct{}
	seenOrder []string
}

// NewSupervisor creates a Supervisor.
func NewSupervisor(source SubmissionSource, handler PostHandler, cfg Config, logger *slog.Logger, collector *metrics.Collector) *Supervisor {
	cfg = cfg.withDefaults()
	return &Supervisor{
		source:    source,
		handler:   handler,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Every(cfg.PollInterval), 1),
		logger:    logger,
		collector: collector,
		seen:      make(map[string]struct{}, seenCapacity),
	}
}

// Run authenticates and streams until the context is cancelled or a fatal
// error occurs. Recoverable stream errors are classified and absorbed here;
// the post processor itself never retries.
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.source.Authenticate(ctx); err != nil {
		return fmt.Errorf("initial authentication: %w", err)
	}
	s.logger.Info("cleared for takeoff", "subreddit", s.cfg.Subreddit)

	for {
		err := s.stream(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		var rateLimited *reddit.RateLimitError
		switch {
		case errors.As(err, &rateLimited):
			s.collector.RecordStreamRestart("rate_limited")
			s.logger.Warn("rate limited, holding", "delay", rateLimited.RetryAfter)
			if err := sleepCtx(ctx, rateLimited.RetryAfter); err != nil {
				return err
			}
			// Same session; resume directly.

		case reddit.IsAuthExpired(err):
			s.collector.RecordStreamRestart("auth_expired")
			s.logger.Warn("session expired, reauthorizing after a little nap", "cooldown", s.cfg.AuthCooldown)
			if err := sleepCtx(ctx, s.cfg.AuthCooldown); err != nil {
				return err
			}
			if err := s.source.Authenticate(ctx); err != nil {
				return fmt.Errorf("re-authentication: %w", err)
			}

		case reddit.IsServerError(err):
			s.collector.RecordStreamRestart("server_error")
			s.logger.Warn("upstream server error, resuming", "error", err)

		default:
			s.collector.RecordStreamRestart("unknown")
			s.logger.Error("unexpected stream error, reauthorizing after cooldown", "error", err)
			if err := sleepCtx(ctx, s.cfg.AuthCooldown); err != nil {
				return err
			}
			if err := s.source.Authenticate(ctx); err != nil {
				return fmt.Errorf("re-authentication: %w", err)
			}
		}
	}
}

// stream polls the new-submission listing until an error needs the retry
// policy. The limiter paces reads at the configured poll interval.
func (s *Supervisor) stream(ctx context.Context) error {
	for {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		posts, err := s.source.NewSubmissions(ctx, s.cfg.Subreddit, s.cfg.FetchLimit)
		if err != nil {
			return err
		}

		// Listings arrive newest first; dispatch oldest first so replies
		// land in posting order.
		for i := len(posts) - 1; i >= 0; i-- {
			post := posts[i]
			if s.alreadyDispatched(post.Fullname) {
				continue
			}
			s.markDispatched(post.Fullname)
			s.collector.RecordPostSeen()

			outcome, err := s.handler.Process(ctx, &post)
			if err != nil {
				return err
			}
			switch outcome {
			case domain.OutcomeReplied:
				s.collector.RecordReplyPosted()
			case domain.OutcomeDuplicate:
				s.collector.RecordDuplicateSkipped()
				s.logger.Info("already replied, skipping", "post", post.Fullname)
			}
		}
	}
}

func (s *Supervisor) alreadyDispatched(fullname string) bool {
	_, ok := s.seen[fullname]
	return ok
}

func (s *Supervisor) markDispatched(fullname string) {
	s.seen[fullname] = struct{}{}
	s.seenOrder = append(s.seenOrder, fullname)
	if len(s.seenOrder) > seenCapacity {
		oldest := s.seenOrder[0]
		s.seenOrder = s.seenOrder[1:]
		delete(s.seen, oldest)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

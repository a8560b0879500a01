// Package lookup fetches user profiles with bounded retries, exponential
// backoff and strict response validation, and turns every outcome into a
// user-facing Result.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/usestring/mcp-starter/internal/cache"
	"github.com/usestring/mcp-starter/internal/userschema"
	"github.com/usestring/mcp-starter/pkg/client"
	"github.com/usestring/mcp-starter/pkg/types"
)

// Defaults for Service.
const (
	DefaultMaxAttempts    = 3
	DefaultAttemptTimeout = 10 * time.Second
)

// Fetcher retrieves the raw payload for a user. *client.Client implements it.
type Fetcher interface {
	GetUserRaw(ctx context.Context, userID int) ([]byte, error)
}

// Request identifies the user to look up. ID must be positive; callers
// validate it before calling Lookup.
type Request struct {
	ID int
}

// Result is the outcome of one Lookup. Text is always set and safe to show
// to the user.
type Result struct {
	Text     string
	IsError  bool
	Kind     Kind
	Attempts int         // network calls made
	User     *types.User // set when Kind is KindSuccess
}

// WaitFunc blocks for d or until ctx is done, returning ctx.Err() in the
// latter case.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Service performs user lookups. It holds no per-lookup state and is safe
// for concurrent use.
type Service struct {
	fetcher        Fetcher
	validator      *userschema.Validator
	cache          *cache.UserCache
	maxAttempts    int
	backoff        Backoff
	attemptTimeout time.Duration
	wait           WaitFunc
	logger         *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithMaxAttempts sets the attempt budget. Values below 1 are raised to 1.
func WithMaxAttempts(n int) Option {
	return func(s *Service) { s.maxAttempts = n }
}

// WithBackoff sets the delay policy between attempts.
func WithBackoff(b Backoff) Option {
	return func(s *Service) { s.backoff = b }
}

// WithAttemptTimeout bounds each network call. Zero disables the bound.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Service) { s.attemptTimeout = d }
}

// WithCache serves repeated lookups from c. A nil cache disables caching.
func WithCache(c *cache.UserCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithWait replaces the backoff wait, mainly for tests.
func WithWait(fn WaitFunc) Option {
	return func(s *Service) { s.wait = fn }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service.
func New(f Fetcher, v *userschema.Validator, opts ...Option) *Service {
	s := &Service{
		fetcher:        f,
		validator:      v,
		maxAttempts:    DefaultMaxAttempts,
		backoff:        Backoff{Initial: DefaultInitialDelay},
		attemptTimeout: DefaultAttemptTimeout,
		wait:           sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = 1
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// MaxAttempts returns the attempt budget.
func (s *Service) MaxAttempts() int {
	return s.maxAttempts
}

// outcome is the classified result of a single attempt.
type outcome struct {
	kind       Kind
	user       *types.User
	status     int
	timeout    bool
	violations []string
	err        error
}

// Lookup fetches and validates the user identified by req. It never returns
// an error: every failure is reported through Result.
func (s *Service) Lookup(ctx context.Context, req Request) Result {
	logger := s.logger.With(
		slog.String("lookup_id", uuid.NewString()),
		slog.Int("user_id", req.ID),
	)

	if user, ok := s.cache.Get(req.ID); ok {
		logger.Debug("user served from cache")
		return successResult(user, 0)
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		out := s.attempt(ctx, req.ID)
		calls := attempt + 1

		if out.kind == KindSuccess {
			s.cache.Put(out.user)
			logger.Debug("user lookup succeeded", slog.Int("attempts", calls))
			return successResult(out.user, calls)
		}

		if !out.kind.Retryable() {
			return s.terminal(req.ID, out, calls)
		}

		if attempt == s.maxAttempts-1 {
			logger.Error("all lookup attempts exhausted",
				slog.String("kind", out.kind.String()),
				slog.Int("status", out.status),
				slog.Int("attempts", calls),
				slog.Any("error", out.err),
			)
			return s.terminal(req.ID, out, calls)
		}

		delay := s.backoff.Delay(attempt)
		logger.Warn("retrying user lookup",
			slog.String("kind", out.kind.String()),
			slog.Int("status", out.status),
			slog.Int("attempt", calls),
			slog.Int("max_attempts", s.maxAttempts),
			slog.Duration("delay", delay),
		)
		if err := s.wait(ctx, delay); err != nil {
			return s.terminal(req.ID, outcome{kind: KindCanceled, err: err}, calls)
		}
	}

	// Unreachable while maxAttempts >= 1: the final attempt always returns.
	logger.Error("lookup loop ended without a result")
	return Result{
		Text:     fmt.Sprintf("Failed to fetch user profile after %d attempts.", s.maxAttempts),
		IsError:  true,
		Kind:     KindExhausted,
		Attempts: s.maxAttempts,
	}
}

// attempt performs one network call and classifies it.
func (s *Service) attempt(ctx context.Context, userID int) outcome {
	actx := ctx
	if s.attemptTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, s.attemptTimeout)
		defer cancel()
	}

	body, err := s.fetcher.GetUserRaw(actx, userID)
	if err != nil {
		if ctx.Err() != nil {
			return outcome{kind: KindCanceled, err: err}
		}
		switch status := client.StatusOf(err); status {
		case http.StatusNotFound:
			return outcome{kind: KindNotFound, status: status, err: err}
		case http.StatusTooManyRequests:
			return outcome{kind: KindRateLimited, status: status, err: err}
		default:
			return outcome{kind: KindTransport, status: status, timeout: isTimeout(err), err: err}
		}
	}

	user, err := s.validator.Decode(body)
	if err != nil {
		var verr *userschema.ViolationError
		if errors.As(err, &verr) {
			return outcome{kind: KindMalformed, violations: verr.Violations, err: err}
		}
		return outcome{kind: KindMalformed, violations: []string{err.Error()}, err: err}
	}

	return outcome{kind: KindSuccess, user: user}
}

// terminal renders the user-facing Result for a failed lookup.
func (s *Service) terminal(userID int, out outcome, calls int) Result {
	r := Result{IsError: true, Kind: out.kind, Attempts: calls}

	switch out.kind {
	case KindNotFound:
		r.Text = fmt.Sprintf("User with ID %d not found.", userID)
	case KindRateLimited:
		r.Text = fmt.Sprintf("Rate limit exceeded while fetching user %d. Please try again later.", userID)
	case KindTransport:
		r.Text = "Failed to fetch user profile: " + transportDetail(out)
	case KindMalformed:
		r.Text = "Invalid response format: " + strings.Join(out.violations, "; ")
	case KindCanceled:
		r.Text = fmt.Sprintf("Request cancelled before user %d could be fetched.", userID)
	default:
		r.Kind = KindExhausted
		r.Text = fmt.Sprintf("Failed to fetch user profile after %d attempts.", calls)
	}
	return r
}

// transportDetail describes a transport failure without exposing raw error
// text, which may contain internal addresses.
func transportDetail(out outcome) string {
	switch {
	case out.status > 0:
		return fmt.Sprintf("upstream returned HTTP %d %s", out.status, http.StatusText(out.status))
	case out.timeout:
		return "request timed out"
	default:
		return "upstream request failed"
	}
}

func successResult(user *types.User, calls int) Result {
	return Result{
		Text:     FormatUser(user),
		Kind:     KindSuccess,
		Attempts: calls,
		User:     user,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// sleep is the default WaitFunc.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

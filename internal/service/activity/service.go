package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"bounties-api/internal/domain"
	"bounties-api/internal/metrics"
	"bounties-api/internal/repository"
)

const populateLockKey = "activities:populate-comments:lock"

var ErrAlreadyRunning = errors.New("comment activity population is already running")

// releaseLock deletes the lock only while it still holds this run's token.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunError is a failure that aborted a run, with the stack where it was
// detected.
type RunError struct {
	Err   error
	Stack []byte
}

func (e *RunError) Error() string { return e.Err.Error() }

func (e *RunError) Unwrap() error { return e.Err }

func abort(format string, args ...interface{}) error {
	return &RunError{Err: fmt.Errorf(format, args...), Stack: debug.Stack()}
}

type Service interface {
	// PopulateFromComments inserts one Comment activity per owner found for
	// every stored comment and returns how many rows it inserted. Rows
	// inserted before a failure are kept.
	PopulateFromComments(ctx context.Context) (int, error)
}

type service struct {
	commentRepo     repository.CommentRepository
	bountyRepo      repository.OwnerRepository
	fulfillmentRepo repository.OwnerRepository
	activityRepo    repository.ActivityRepository
	redis           *redis.Client
	lockTTL         time.Duration
	metrics         metrics.Recorder
	logger          *slog.Logger
}

func NewService(
	commentRepo repository.CommentRepository,
	bountyRepo repository.OwnerRepository,
	fulfillmentRepo repository.OwnerRepository,
	activityRepo repository.ActivityRepository,
	redis *redis.Client,
	lockTTL time.Duration,
	recorder metrics.Recorder,
	logger *slog.Logger,
) Service {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		commentRepo:     commentRepo,
		bountyRepo:      bountyRepo,
		fulfillmentRepo: fulfillmentRepo,
		activityRepo:    activityRepo,
		redis:           redis,
		lockTTL:         lockTTL,
		metrics:         recorder,
		logger:          logger,
	}
}

func (s *service) PopulateFromComments(ctx context.Context) (int, error) {
	release, err := s.acquireLock(ctx)
	if err != nil {
		return 0, err
	}
	defer release()

	comments, err := s.commentRepo.ListAll(ctx)
	if err != nil {
		return 0, abort("failed to list comments: %w", err)
	}

	created := 0
	for _, comment := range comments {
		owned := false

		// Both lookups always run: a comment linked to a bounty and a
		// fulfillment yields two activities.
		bountyID, err := s.bountyRepo.FindByComment(ctx, comment.ID)
		switch {
		case err == nil:
			if err := s.activityRepo.Create(ctx, domain.NewBountyCommentActivity(comment, bountyID)); err != nil {
				return created, abort("failed to create bounty activity for comment %d: %w", comment.ID, err)
			}
			created++
			owned = true
			s.metrics.ActivityCreated("bounty")
		case !errors.Is(err, domain.ErrNotFound):
			return created, abort("failed to find bounty for comment %d: %w", comment.ID, err)
		}

		fulfillmentID, err := s.fulfillmentRepo.FindByComment(ctx, comment.ID)
		switch {
		case err == nil:
			if err := s.activityRepo.Create(ctx, domain.NewFulfillmentCommentActivity(comment, fulfillmentID)); err != nil {
				return created, abort("failed to create fulfillment activity for comment %d: %w", comment.ID, err)
			}
			created++
			owned = true
			s.metrics.ActivityCreated("fulfillment")
		case !errors.Is(err, domain.ErrNotFound):
			return created, abort("failed to find fulfillment for comment %d: %w", comment.ID, err)
		}

		if !owned {
			s.metrics.CommentWithoutOwner()
			s.logger.DebugContext(ctx, "comment has no owner", slog.Int64("comment_id", comment.ID))
		}
	}

	s.logger.InfoContext(ctx, "comment activities populated",
		slog.Int("comments", len(comments)),
		slog.Int("activities_created", created),
	)
	return created, nil
}

func (s *service) acquireLock(ctx context.Context) (func(), error) {
	if s.redis == nil {
		return func() {}, nil
	}

	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, populateLockKey, token, s.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire populate lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}

	return func() {
		released, err := releaseLock.Run(context.Background(), s.redis, []string{populateLockKey}, token).Int()
		if err != nil {
			s.logger.Warn("failed to release populate lock", slog.String("error", err.Error()))
			return
		}
		if released == 0 {
			s.logger.Warn("populate lock expired before the run finished", slog.Duration("ttl", s.lockTTL))
		}
	}, nil
}

package matchmaker

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	"github.com/babmate/backend/internal/domain/rules"
)

const leaseKey = "matchmaker:run"

type RequestStore interface {
	ListBucket(ctx context.Context, date time.Time, slot enums.TimeSlot, category enums.Category) ([]model.MatchingRequest, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type MatchStore interface {
	CreateFromPair(ctx context.Context, match model.Match, requestID1, requestID2 int64) (model.Match, error)
}

type StoreDirectory interface {
	ListByCategory(ctx context.Context, category enums.Category) ([]model.Store, error)
}

// RunLocker is the single-flight guard: a run that cannot acquire the lease
// exits immediately so overlapping ticks never double-consume a request.
type RunLocker interface {
	Acquire(ctx context.Context, key, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, owner string) error
}

type Metrics interface {
	RecordRun()
	RecordRunSkipped()
	RecordMatchCreated()
	RecordBucketError()
	RecordLeftoverDropped()
}

type Config struct {
	// LocalOffset shifts UTC to the service's local day when computing the
	// canonical "today" for a run.
	LocalOffset time.Duration
	// DropLeftover deletes an unpaired singleton instead of carrying it to
	// the next run.
	DropLeftover bool
	LeaseTTL     time.Duration
}

type Job struct {
	requests RequestStore
	matches  MatchStore
	stores   StoreDirectory
	locker   RunLocker
	metrics  Metrics
	cfg      Config
	now      func() time.Time
	rnd      *rand.Rand
	logger   *zap.Logger
}

type Dependencies struct {
	Requests RequestStore
	Matches  MatchStore
	Stores   StoreDirectory
	Locker   RunLocker
	Metrics  Metrics
	Logger   *zap.Logger
}

func New(deps Dependencies, cfg Config) *Job {
	if cfg.LocalOffset == 0 {
		cfg.LocalOffset = 9 * time.Hour
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = 4 * time.Minute
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		requests: deps.Requests,
		matches:  deps.Matches,
		stores:   deps.Stores,
		locker:   deps.Locker,
		metrics:  deps.Metrics,
		cfg:      cfg,
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger,
	}
}

// CanonicalToday is the calendar day a run matches for, computed once at run
// start under the fixed local offset so a run never straddles a day boundary.
func CanonicalToday(now time.Time, offset time.Duration) time.Time {
	local := now.UTC().Add(offset)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Run executes one matching pass over every (category, time slot) bucket for
// today. Bucket failures are logged and skipped; they never abort the run.
func (j *Job) Run(ctx context.Context) error {
	if j.locker != nil {
		owner := uuid.NewString()
		acquired, err := j.locker.Acquire(ctx, leaseKey, owner, j.cfg.LeaseTTL)
		if err != nil {
			return err
		}
		if !acquired {
			j.logger.Info("matching run already in progress, skipping tick")
			if j.metrics != nil {
				j.metrics.RecordRunSkipped()
			}
			return nil
		}
		defer func() {
			if err := j.locker.Release(ctx, leaseKey, owner); err != nil {
				j.logger.Warn("release matchmaker lease", zap.Error(err))
			}
		}()
	}

	today := CanonicalToday(j.now(), j.cfg.LocalOffset)
	j.logger.Info("matching run started", zap.String("date", today.Format("2006-01-02")))

	for _, category := range enums.AllCategories() {
		stores, err := j.stores.ListByCategory(ctx, category)
		if err != nil {
			j.logger.Error("load stores for category",
				zap.Error(err), zap.String("category", string(category)))
			if j.metrics != nil {
				j.metrics.RecordBucketError()
			}
			continue
		}

		for _, slot := range enums.AllTimeSlots() {
			if err := j.processBucket(ctx, today, slot, category, stores); err != nil {
				j.logger.Error("process bucket",
					zap.Error(err),
					zap.String("category", string(category)),
					zap.String("time_slot", string(slot)))
				if j.metrics != nil {
					j.metrics.RecordBucketError()
				}
			}
		}
	}

	if j.metrics != nil {
		j.metrics.RecordRun()
	}
	j.logger.Info("matching run finished")
	return nil
}

func (j *Job) processBucket(ctx context.Context, date time.Time, slot enums.TimeSlot, category enums.Category, stores []model.Store) error {
	bucket, err := j.requests.ListBucket(ctx, date, slot, category)
	if err != nil {
		return err
	}
	if len(bucket) == 0 {
		return nil
	}

	pairs, leftover := rules.Pair(bucket)

	for _, pair := range pairs {
		store, err := rules.PickEligibleStore(stores, date, slot, j.rnd)
		if err != nil {
			if errors.Is(err, rules.ErrNoEligibleStore) {
				// Nothing in this bucket can be served this run; every
				// request stays pending for the next tick.
				j.logger.Info("no eligible store, bucket deferred",
					zap.String("category", string(category)),
					zap.String("time_slot", string(slot)))
				return nil
			}
			return err
		}

		match := model.Match{
			Date:      date,
			TimeSlot:  slot,
			Category:  category,
			StoreID:   store.ID,
			User1ID:   pair[0].UserID,
			User2ID:   pair[1].UserID,
			User1Memo: pair[0].Memo,
			User2Memo: pair[1].Memo,
		}

		created, err := j.matches.CreateFromPair(ctx, match, pair[0].ID, pair[1].ID)
		if err != nil {
			// The pair stays pending; the next tick retries it.
			return err
		}

		if j.metrics != nil {
			j.metrics.RecordMatchCreated()
		}
		j.logger.Info("match created",
			zap.Int64("match_id", created.ID),
			zap.Int64("user1_id", created.User1ID),
			zap.Int64("user2_id", created.User2ID),
			zap.Int64("store_id", created.StoreID),
			zap.String("time_slot", string(slot)),
			zap.String("category", string(category)))
	}

	if leftover != nil && j.cfg.DropLeftover {
		if _, err := j.requests.Delete(ctx, leftover.ID); err != nil {
			return err
		}
		if j.metrics != nil {
			j.metrics.RecordLeftoverDropped()
		}
		j.logger.Info("unpaired request dropped",
			zap.Int64("request_id", leftover.ID),
			zap.Int64("user_id", leftover.UserID))
	}

	return nil
}

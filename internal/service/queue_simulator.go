package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/serenitycare/appointment-api/config"
	"github.com/serenitycare/appointment-api/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Errors
// =============================================================================

// ErrTokenNotTracked is returned when a token has no live queue state in Redis
var ErrTokenNotTracked = errors.New("token is not tracked in the live queue")

// advanceQueueScript advances a token's simulated queue state atomically.
// Redis Go client automatically uses EVALSHA after the first call, so the
// script body is only sent once.
//
// Logic:
// 1. If the position key is gone (expired / never seeded) return {-1,-1,-1}
// 2. Decrement position toward 1, never below
// 3. Decrement wait estimate by ARGV[1], never below the floor ARGV[2]
// 4. Report whether the token has been called
var advanceQueueScript = redis.NewScript(`
	local pos = redis.call('GET', KEYS[1])
	if not pos then
		return {-1, -1, -1}
	end
	pos = tonumber(pos)
	if pos > 1 then
		pos = pos - 1
		redis.call('SET', KEYS[1], pos, 'KEEPTTL')
	end
	local wait = tonumber(redis.call('GET', KEYS[2]) or '0')
	wait = wait - tonumber(ARGV[1])
	local floor = tonumber(ARGV[2])
	if wait < floor then
		wait = floor
	end
	redis.call('SET', KEYS[2], wait, 'KEEPTTL')
	local called = redis.call('EXISTS', KEYS[3])
	return {pos, wait, called}
`)

// =============================================================================
// Constants
// =============================================================================

const (
	// Redis key prefixes for the queue simulator
	RedisTokenSeqKeyPrefix  = "token:seq:"
	RedisQueuePosKeyPrefix  = "queue:pos:"
	RedisQueueWaitKeyPrefix = "queue:wait:"
	RedisCalledKeyPrefix    = "queue:called:"
	RedisServingKey         = "queue:serving"
)

// =============================================================================
// Types
// =============================================================================

// QueueSimulator issues display tokens and simulates live queue progress.
//
// This is explicitly a simulation: positions start at a bounded pseudo-random
// rank and only ever move forward. A production replacement would be fed by
// clinical check-in events instead.
type QueueSimulator interface {
	// NextTokenNumber reserves the next token in the department's per-day
	// sequence, formatted {DepartmentInitial}-{sequence}.
	NextTokenNumber(ctx context.Context, dept entity.Department, date time.Time) (string, error)
	// InitPosition seeds queue state for a freshly issued token and returns
	// the starting position. Seeding is idempotent: existing state is kept.
	InitPosition(ctx context.Context, tokenNumber string, date time.Time) (int, error)
	// Poll advances the simulated queue one step and returns the snapshot.
	// Returns ErrTokenNotTracked when the token has no live state.
	Poll(ctx context.Context, tokenNumber string) (*entity.QueueSnapshot, error)
	// Call marks the token as called to the consultation room.
	Call(ctx context.Context, tokenNumber string) error
	// CurrentlyServing returns the most recently called token, or "" if none.
	CurrentlyServing(ctx context.Context) (string, error)
}

type queueSimulator struct {
	redisClient *redis.Client
	log         *logrus.Logger
	cfg         config.QueueConfig
}

func NewQueueSimulator(redisClient *redis.Client, log *logrus.Logger, cfg config.QueueConfig) QueueSimulator {
	return &queueSimulator{
		redisClient: redisClient,
		log:         log,
		cfg:         cfg,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

func (s *queueSimulator) NextTokenNumber(ctx context.Context, dept entity.Department, date time.Time) (string, error) {
	seqKey := fmt.Sprintf("%s%s:%s", RedisTokenSeqKeyPrefix, dept.ID, date.Format("20060102"))

	pipe := s.redisClient.TxPipeline()
	seq := pipe.Incr(ctx, seqKey)
	pipe.Expire(ctx, seqKey, keyTTL(date))

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to reserve token sequence for department %s: %+v", dept.ID, err)
		return "", fmt.Errorf("reserve token sequence for department %s: %w", dept.ID, err)
	}

	token := fmt.Sprintf("%s-%d", dept.TokenInitial(), seq.Val())
	s.log.Debugf("Issued token %s for department %s on %s", token, dept.ID, date.Format("2006-01-02"))
	return token, nil
}

func (s *queueSimulator) InitPosition(ctx context.Context, tokenNumber string, date time.Time) (int, error) {
	maxStart := s.cfg.MaxInitialPosition
	if maxStart < 1 {
		maxStart = 1
	}
	position := rand.Intn(maxStart) + 1
	wait := initialWait(position, s.cfg.MinWaitMinutes, s.cfg.WaitStepMinutes)
	ttl := keyTTL(date)

	posKey := RedisQueuePosKeyPrefix + tokenNumber
	waitKey := RedisQueueWaitKeyPrefix + tokenNumber

	// SETNX keeps progress already made if the token was seeded before.
	pipe := s.redisClient.TxPipeline()
	setPos := pipe.SetNX(ctx, posKey, position, ttl)
	pipe.SetNX(ctx, waitKey, wait, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to seed queue state for token %s: %+v", tokenNumber, err)
		return 0, fmt.Errorf("seed queue state for token %s: %w", tokenNumber, err)
	}

	if !setPos.Val() {
		// Already seeded; report the live position instead.
		current, err := s.redisClient.Get(ctx, posKey).Int()
		if err != nil {
			return 0, fmt.Errorf("read existing position for token %s: %w", tokenNumber, err)
		}
		return current, nil
	}

	s.log.Debugf("Seeded queue state for token %s: position=%d, wait=%d", tokenNumber, position, wait)
	return position, nil
}

func (s *queueSimulator) Poll(ctx context.Context, tokenNumber string) (*entity.QueueSnapshot, error) {
	posKey := RedisQueuePosKeyPrefix + tokenNumber
	waitKey := RedisQueueWaitKeyPrefix + tokenNumber
	calledKey := RedisCalledKeyPrefix + tokenNumber

	result, err := advanceQueueScript.Run(ctx, s.redisClient,
		[]string{posKey, waitKey, calledKey},
		s.cfg.WaitStepMinutes, s.cfg.MinWaitMinutes,
	).Int64Slice()
	if err != nil {
		s.log.Warnf("Failed Lua script advanceQueue for token %s: %+v", tokenNumber, err)
		return nil, fmt.Errorf("lua advance_queue for token %s: %w", tokenNumber, err)
	}
	if len(result) != 3 {
		return nil, fmt.Errorf("lua advance_queue for token %s: unexpected reply length %d", tokenNumber, len(result))
	}

	if result[0] == -1 {
		return nil, ErrTokenNotTracked
	}

	position := int(result[0])
	wait := int(result[1])
	called := result[2] == 1

	return &entity.QueueSnapshot{
		TokenNumber:          tokenNumber,
		CurrentPosition:      position,
		EstimatedWaitMinutes: wait,
		Status:               snapshotStatus(position, called),
	}, nil
}

func (s *queueSimulator) Call(ctx context.Context, tokenNumber string) error {
	calledKey := RedisCalledKeyPrefix + tokenNumber
	posKey := RedisQueuePosKeyPrefix + tokenNumber

	// A called token is at the head of its queue by definition.
	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, calledKey, 1, 24*time.Hour)
	pipe.Set(ctx, posKey, 1, 24*time.Hour)
	pipe.Set(ctx, RedisQueueWaitKeyPrefix+tokenNumber, 0, 24*time.Hour)
	pipe.Set(ctx, RedisServingKey, tokenNumber, 24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to call token %s: %+v", tokenNumber, err)
		return fmt.Errorf("call token %s: %w", tokenNumber, err)
	}

	s.log.Infof("Token called: %s", tokenNumber)
	return nil
}

func (s *queueSimulator) CurrentlyServing(ctx context.Context) (string, error) {
	serving, err := s.redisClient.Get(ctx, RedisServingKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("read currently serving token: %w", err)
	}
	return serving, nil
}

// =============================================================================
// Private Helpers
// =============================================================================

// snapshotStatus derives the queue status shown to the patient
func snapshotStatus(position int, called bool) entity.QueueStatus {
	switch {
	case called:
		return entity.QueueStatusCalled
	case position <= 1:
		return entity.QueueStatusNext
	default:
		return entity.QueueStatusInQueue
	}
}

// initialWait estimates the starting wait from the starting position
func initialWait(position, minWait, waitStep int) int {
	wait := minWait + position*waitStep
	if wait < minWait {
		return minWait
	}
	return wait
}

// keyTTL returns a TTL expiring 24 hours after the appointment date, so
// per-day token sequences and stale queue state clean themselves up.
func keyTTL(date time.Time) time.Duration {
	expireAt := date.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)

	if ttl <= 0 {
		// Past date - short TTL for cleanup
		return 1 * time.Minute
	}

	return ttl
}

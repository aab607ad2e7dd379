package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/bpmutter/tappdin-backend/internal/model"
)

type CheckinCache struct {
	client         *redisv9.Client
	feedTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

func NewCheckinCache(client *redisv9.Client, feedTTL, dirtyMarkerTTL time.Duration) *CheckinCache {
	if feedTTL <= 0 {
		feedTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &CheckinCache{
		client:         client,
		feedTTL:        feedTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *CheckinCache) GetFeed(ctx context.Context, userID uint) ([]model.Checkin, bool, error) {
	key := c.feedKey(userID)
	raw, err := c.client.Get(ctx, key).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get checkin feed failed: %w", err)
	}

	var checkins []model.Checkin
	if err := json.Unmarshal([]byte(raw), &checkins); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached checkin feed failed: %w", err)
	}
	return checkins, true, nil
}

func (c *CheckinCache) SetFeed(ctx context.Context, userID uint, checkins []model.Checkin) error {
	key := c.feedKey(userID)
	payload, err := json.Marshal(checkins)
	if err != nil {
		return fmt.Errorf("marshal checkin feed failed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.feedTTL).Err(); err != nil {
		return fmt.Errorf("redis set checkin feed failed: %w", err)
	}
	return nil
}

func (c *CheckinCache) DeleteFeed(ctx context.Context, userID uint) error {
	key := c.feedKey(userID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete checkin feed failed: %w", err)
	}
	return nil
}

func (c *CheckinCache) MarkDirty(ctx context.Context, userID uint) error {
	key := c.dirtyKey(userID)
	if err := c.client.Set(ctx, key, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *CheckinCache) IsDirty(ctx context.Context, userID uint) (bool, error) {
	key := c.dirtyKey(userID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}

func (c *CheckinCache) feedKey(userID uint) string {
	return fmt.Sprintf("user:checkins:%d", userID)
}

func (c *CheckinCache) dirtyKey(userID uint) string {
	return fmt.Sprintf("user:checkins:dirty:%d", userID)
}

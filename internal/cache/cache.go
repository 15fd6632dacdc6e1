package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aditya-4747/VideoStreamAPI/internal/config"
	"github.com/aditya-4747/VideoStreamAPI/internal/metrics"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// Cache provides caching functionality using Redis
type Cache struct {
	client   *redis.Client
	statsTTL time.Duration
	videoTTL time.Duration
}

// New creates a new cache instance from the Redis configuration
func New(cfg config.RedisConfig) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client, statsTTL: cfg.StatsTTL, videoTTL: cfg.VideoTTL}, nil
}

// NewWithClient wraps an existing Redis client, used by tests.
func NewWithClient(client *redis.Client, statsTTL, videoTTL time.Duration) *Cache {
	return &Cache{client: client, statsTTL: statsTTL, videoTTL: videoTTL}
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// Video Cache Operations

// SetVideo caches video metadata
func (c *Cache) SetVideo(ctx context.Context, video *models.Video) error {
	data, err := json.Marshal(video)
	if err != nil {
		return fmt.Errorf("failed to marshal video: %w", err)
	}

	key := fmt.Sprintf("video:%s", video.ID)
	return c.client.Set(ctx, key, data, c.videoTTL).Err()
}

// GetVideo retrieves video metadata from cache
func (c *Cache) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	key := fmt.Sprintf("video:%s", videoID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.CacheMissesTotal.WithLabelValues("video").Inc()
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get video from cache: %w", err)
	}

	var video models.Video
	if err := json.Unmarshal(data, &video); err != nil {
		return nil, fmt.Errorf("failed to unmarshal video: %w", err)
	}

	metrics.CacheHitsTotal.WithLabelValues("video").Inc()
	return &video, nil
}

// DeleteVideo removes video from cache
func (c *Cache) DeleteVideo(ctx context.Context, videoID string) error {
	key := fmt.Sprintf("video:%s", videoID)
	return c.client.Del(ctx, key).Err()
}

// Channel Stats Cache Operations

func statsKey(channelID, viewerID string) string {
	if viewerID == "" {
		viewerID = "anonymous"
	}
	return fmt.Sprintf("stats:channel:%s:viewer:%s", channelID, viewerID)
}

// SetChannelStats caches the derived channel view per (channel, viewer)
func (c *Cache) SetChannelStats(ctx context.Context, viewerID string, stats *models.ChannelStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal channel stats: %w", err)
	}

	return c.client.Set(ctx, statsKey(stats.ChannelID, viewerID), data, c.statsTTL).Err()
}

// GetChannelStats retrieves cached channel stats, nil on miss
func (c *Cache) GetChannelStats(ctx context.Context, channelID, viewerID string) (*models.ChannelStats, error) {
	data, err := c.client.Get(ctx, statsKey(channelID, viewerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.CacheMissesTotal.WithLabelValues("channel_stats").Inc()
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get channel stats from cache: %w", err)
	}

	var stats models.ChannelStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal channel stats: %w", err)
	}

	metrics.CacheHitsTotal.WithLabelValues("channel_stats").Inc()
	return &stats, nil
}

// InvalidateChannelStats drops every cached view of a channel,
// whatever the viewer. Called when a subscription toggles or a video
// publish state changes.
func (c *Cache) InvalidateChannelStats(ctx context.Context, channelID string) error {
	return c.deletePattern(ctx, fmt.Sprintf("stats:channel:%s:viewer:*", channelID))
}

// deletePattern deletes all keys matching a pattern
func (c *Cache) deletePattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Health check
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

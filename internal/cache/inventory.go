package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// feedVersionKey is a monotonically increasing counter folded into every
	// feed page key. Bumping it invalidates all cached feed pages at once
	// without scanning the keyspace.
	feedVersionKey = "feed:ver"

	postKeyPrefix = "post:%d"
	feedKeyPrefix = "feed:v%d:p%d:l%d:t%s"
)

const (
	PostTTL = 30 * time.Minute
	FeedTTL = 1 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// FeedKey builds the cache key for one feed page. It embeds the current feed
// version, so keys from before the last invalidation simply expire unused.
// If the version cannot be read the key is empty, which the get/set helpers
// treat as cache-off: a guessed version could serve pre-invalidation pages.
func FeedKey(ctx context.Context, page, limit int, tag string) string {
	var version int64
	if client != nil {
		v, err := client.Get(ctx, feedVersionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return ""
		}
		version = v
	}
	return fmt.Sprintf(feedKeyPrefix, version, page, limit, tag)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops every cached feed page by bumping the feed version.
func InvalidateFeed(ctx context.Context) {
	if client != nil {
		client.Incr(ctx, feedVersionKey)
	}
}

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func screenKey(screenID int) string {
	return fmt.Sprintf("screen:%d:playlist", screenID)
}

// CachePlaylistForScreen stores a resolved screen -> playlist lookup. The
// TTL keeps stale resolutions short-lived even if invalidation is missed.
func CachePlaylistForScreen(ctx context.Context, screenID, playlistID int, ttl time.Duration) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, screenKey(screenID), playlistID, ttl).Err(); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to cache playlist resolution")
	}
}

// CachedPlaylistForScreen returns the cached resolution, if present.
func CachedPlaylistForScreen(ctx context.Context, screenID int) (int, bool) {
	if Rdb == nil {
		return 0, false
	}
	playlistID, err := Rdb.Get(ctx, screenKey(screenID)).Int()
	if err != nil {
		return 0, false
	}
	return playlistID, true
}

func pairingKey(code string) string {
	return "pairing:" + code
}

// SetPairingCode stores a short-lived pairing code a device can redeem for
// its screen id.
func SetPairingCode(ctx context.Context, code string, screenID int, ttl time.Duration) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, pairingKey(code), screenID, ttl).Err(); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to store pairing code")
	}
}

// LookupPairingCode resolves a pairing code to its screen id and consumes it.
func LookupPairingCode(ctx context.Context, code string) (int, bool) {
	if Rdb == nil {
		return 0, false
	}
	screenID, err := Rdb.GetDel(ctx, pairingKey(code)).Int()
	if err != nil {
		return 0, false
	}
	return screenID, true
}

// InvalidateScreen drops a screen's cached resolution after schedule writes.
func InvalidateScreen(ctx context.Context, screenID int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Del(ctx, screenKey(screenID)).Err(); err != nil {
		log.Error().Err(err).Int("screen_id", screenID).Msg("failed to invalidate screen cache")
	}
}

package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/api"
	"github.com/pharos-media/pharos/internal/http/api/tv/packets"
	"github.com/pharos-media/pharos/internal/redis"
	"github.com/pharos-media/pharos/internal/schedule"
)

// resolutionTTL keeps cached screen -> playlist lookups short-lived; writes
// also invalidate, the TTL just bounds staleness if they miss.
const resolutionTTL = 30 * time.Second

type TvController struct {
	store db.Store
}

func NewTvController(store db.Store) *TvController {
	return &TvController{store: store}
}

func PairingModule(store db.Store) api.Module {
	ctl := NewTvController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/pair", ctl.pairDevice)
	})
}

func ScreenModule(store db.Store) api.Module {
	ctl := NewTvController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/screens/current_playlist", ctl.currentPlaylist)
	})
}

// pairDevice redeems a pairing code issued by an admin and binds the device
// id to the screen.
func (t *TvController) pairDevice(ctx *gin.Context) (any, *api.APIError) {
	var request packets.PairRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screenID, ok := redis.LookupPairingCode(ctx, request.PairingCode)
	if !ok {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid or expired pairing code"}
	}

	if err := t.store.PairScreen(screenID, request.DeviceID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not pair screen"}
	}

	log.Info().Int("screen_id", screenID).Str("device_id", request.DeviceID).Msg("screen paired")
	return packets.PairResponse{ScreenID: screenID, DeviceID: request.DeviceID}, nil
}

// currentPlaylist resolves which playlist the asking device should be
// showing right now, running the active schedules through the resolver.
func (t *TvController) currentPlaylist(ctx *gin.Context) (any, *api.APIError) {
	var request packets.CurrentPlaylistQuery
	if err := ctx.ShouldBindQuery(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := t.store.GetScreenByDeviceID(request.DeviceID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "unauthorized device"}
	}

	if playlistID, ok := redis.CachedPlaylistForScreen(ctx, screen.ID); ok {
		playlist, err := t.store.GetPlaylistByID(playlistID)
		if err == nil {
			return packets.CurrentPlaylistResponse{Playlist: playlist}, nil
		}
	}

	actives, err := t.store.FindActiveSchedules(screen.TenantID, nil)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load schedules"}
	}

	match, ok := schedule.Resolve(actives, time.Now().UTC())
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "no schedule active"}
	}

	playlist, err := t.store.GetPlaylistByID(match.PlaylistID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load playlist"}
	}

	redis.CachePlaylistForScreen(ctx, screen.ID, playlist.ID, resolutionTTL)
	return packets.CurrentPlaylistResponse{ScheduleID: match.ID, Playlist: playlist}, nil
}

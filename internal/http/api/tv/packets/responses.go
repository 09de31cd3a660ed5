package packets

import "github.com/pharos-media/pharos/internal/model"

type PairResponse struct {
	ScreenID int    `json:"screen_id"`
	DeviceID string `json:"device_id"`
}

// CurrentPlaylistResponse carries the playlist the device should show now.
type CurrentPlaylistResponse struct {
	ScheduleID int            `json:"schedule_id"`
	Playlist   model.Playlist `json:"playlist"`
}

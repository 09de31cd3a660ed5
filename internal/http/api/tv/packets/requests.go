package packets

// PairRequest redeems an admin-issued pairing code for a device.
type PairRequest struct {
	PairingCode string `json:"code" binding:"required"`
	DeviceID    string `json:"device_id" binding:"required"`
}

// CurrentPlaylistQuery identifies the asking device.
type CurrentPlaylistQuery struct {
	DeviceID string `form:"device_id" binding:"required"`
}

package packets

// body for registering; the company name becomes the new tenant
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
	Company  string  `json:"company" binding:"required"`
}

// body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type CreateScreenRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location"`
}

type UpdateScreenRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// CreatePairingCodeRequest optionally pins when the code stops working;
// must lie in the future when given.
type CreatePairingCodeRequest struct {
	ExpiresAt *string `json:"expires_at"` // RFC3339
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AddPlaylistItemRequest struct {
	ContentID int `json:"content_id" binding:"required"`
	Position  int `json:"position"`
	Duration  int `json:"duration" binding:"required"` // seconds; required for playlist items
}

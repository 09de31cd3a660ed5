package endpoints

import (
	"crypto/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/api"
	"github.com/pharos-media/pharos/internal/http/api/admin/packets"
	"github.com/pharos-media/pharos/internal/model"
	"github.com/pharos-media/pharos/internal/redis"
	"github.com/pharos-media/pharos/internal/schedule"
)

const defaultPairingTTL = 15 * time.Minute

type ScreenController struct {
	store db.Store
}

func NewScreenController(store db.Store) *ScreenController {
	return &ScreenController{store: store}
}

func ScreenModule(store db.Store) api.Module {
	ctl := NewScreenController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/screens", ctl.listScreens)
		c.POST("/screens", ctl.createScreen)
		c.GET("/screens/:id", ctl.getScreen)
		c.PUT("/screens/:id", ctl.updateScreen)
		c.DELETE("/screens/:id", ctl.deleteScreen)

		// pairing codes for playback devices
		c.POST("/screens/:id/pairing_code", ctl.createPairingCode)
	})
}

func (s *ScreenController) listScreens(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListScreens(user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list screens"}
	}
	return list, nil
}

func (s *ScreenController) createScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen, err := s.store.CreateScreen(user.TenantID, request.Name, request.Location)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}
	return screen, nil
}

func (s *ScreenController) getScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return screen, nil
}

func (s *ScreenController) updateScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := s.store.UpdateScreen(screen.ID, request.Name, request.Location); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update screen"}
	}
	return gin.H{"message": "updated"}, nil
}

func (s *ScreenController) deleteScreen(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.store.DeleteScreen(screen.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete screen"}
	}
	return gin.H{"message": "deleted"}, nil
}

// createPairingCode issues a short-lived code a playback device redeems via
// /api/tv/pair. An explicit expires_at must lie in the future.
func (s *ScreenController) createPairingCode(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	screen, apiErr := s.ownedScreen(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreatePairingCodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	now := time.Now()
	expiresAt := now.Add(defaultPairingTTL)
	if request.ExpiresAt != nil {
		parsed, err := time.Parse(time.RFC3339, *request.ExpiresAt)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid expires_at, expected RFC3339"}
		}
		rule := schedule.TimeRule{Field: "expires_at", AllowEmpty: true, MinLead: time.Minute}
		if errs := rule.Check(&parsed, nil, now); len(errs) > 0 {
			return nil, &api.APIError{Code: http.StatusUnprocessableEntity, Message: errs[0].Message}
		}
		expiresAt = parsed
	}

	code, err := generatePairingCode()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate pairing code"}
	}
	redis.SetPairingCode(ctx, code, screen.ID, time.Until(expiresAt))

	return packets.PairingCodeResponse{
		Code:      code,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

func (s *ScreenController) ownedScreen(ctx *gin.Context, user *model.User) (model.Screen, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Screen{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	screen, err := s.store.GetScreenByID(id)
	if err != nil {
		return model.Screen{}, &api.APIError{Code: http.StatusNotFound, Message: "screen not found"}
	}
	if screen.TenantID != user.TenantID {
		return model.Screen{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return screen, nil
}

const pairingAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generatePairingCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i := range buf {
		buf[i] = pairingAlphabet[int(buf[i])%len(pairingAlphabet)]
	}
	return string(buf), nil
}

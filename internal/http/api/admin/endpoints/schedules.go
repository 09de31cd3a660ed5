package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/api"
	"github.com/pharos-media/pharos/internal/http/middleware"
	"github.com/pharos-media/pharos/internal/model"
	"github.com/pharos-media/pharos/internal/redis"
	"github.com/pharos-media/pharos/internal/schedule"
)

type ScheduleController struct {
	store     db.Store
	validator *schedule.Validator
}

func NewScheduleController(store db.Store) *ScheduleController {
	return &ScheduleController{store: store, validator: schedule.NewValidator(store)}
}

func ScheduleModule(store db.Store) api.Module {
	ctl := NewScheduleController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/schedules", ctl.listSchedules)
		c.POST("/schedules", ctl.createSchedule)
		c.GET("/schedules/:id", ctl.getSchedule)
		c.PUT("/schedules/:id", ctl.updateSchedule)
		c.DELETE("/schedules/:id", ctl.deleteSchedule)
	})
}

func (s *ScheduleController) listSchedules(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := s.store.ListSchedules(user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list schedules"}
	}
	return list, nil
}

func (s *ScheduleController) getSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	owned, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if owned.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return owned, nil
}

// createSchedule runs the raw request body through the validation engine and
// persists the normalized result. The body intentionally binds into a plain
// map so that out-of-range values like a non-numeric priority reach the
// structural rules and come back as field errors rather than a bind failure.
func (s *ScheduleController) createSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	validated, err := s.validator.ValidateSchedule(user.TenantID, fields, nil)
	if err != nil {
		return nil, s.validationError(err)
	}
	if validated.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if apiErr := s.checkPlaylistOwnership(validated.PlaylistID, user); apiErr != nil {
		return nil, apiErr
	}

	created, err := s.store.CreateSchedule(validated)
	if err != nil {
		// the store repeats the conflict decision under the per-tenant
		// lock; a row admitted concurrently comes back as a conflict here
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return nil, api.ValidationFailure(verr)
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create schedule"}
	}

	s.notifyScreens(ctx, user.TenantID)
	return created, nil
}

// updateSchedule re-validates the full field set with the schedule's own id
// excluded from the conflict comparison, so an edit never collides with its
// prior stored state.
func (s *ScheduleController) updateSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	owned, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if owned.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	validated, err := s.validator.ValidateSchedule(user.TenantID, fields, &id)
	if err != nil {
		return nil, s.validationError(err)
	}
	if validated.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if apiErr := s.checkPlaylistOwnership(validated.PlaylistID, user); apiErr != nil {
		return nil, apiErr
	}

	updated, err := s.store.UpdateSchedule(validated)
	if err != nil {
		var verr *schedule.ValidationError
		if errors.As(err, &verr) {
			return nil, api.ValidationFailure(verr)
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update schedule"}
	}

	s.notifyScreens(ctx, user.TenantID)
	return updated, nil
}

// deleteSchedule deactivates rather than removes: the row stays for history
// but stops participating in conflict checks and resolution.
func (s *ScheduleController) deleteSchedule(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	owned, err := s.store.GetSchedule(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "schedule not found"}
	}
	if owned.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := s.store.DeactivateSchedule(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete schedule"}
	}

	s.notifyScreens(ctx, user.TenantID)
	return gin.H{"message": "deactivated"}, nil
}

func (s *ScheduleController) validationError(err error) *api.APIError {
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		return api.ValidationFailure(verr)
	}
	log.Error().Err(err).Msg("schedule validation failed on repository access")
	return &api.APIError{Code: http.StatusInternalServerError, Message: "could not validate schedule"}
}

func (s *ScheduleController) checkPlaylistOwnership(playlistID int, user *model.User) *api.APIError {
	playlist, err := s.store.GetPlaylistByID(playlistID)
	if err != nil {
		return &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	if playlist.TenantID != user.TenantID {
		return &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return nil
}

// notifyScreens pushes refresh commands to the tenant's paired devices and
// drops their cached resolutions after any schedule write.
func (s *ScheduleController) notifyScreens(ctx *gin.Context, tenantID int) {
	screens, err := s.store.ListScreens(tenantID)
	if err != nil {
		log.Error().Err(err).Int("tenant_id", tenantID).Msg("failed to list screens for notification")
		return
	}
	for _, screen := range screens {
		redis.InvalidateScreen(ctx, screen.ID)
	}
	middleware.NotifyScreens(screens)
}

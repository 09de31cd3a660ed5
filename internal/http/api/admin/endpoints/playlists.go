package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/api"
	"github.com/pharos-media/pharos/internal/http/api/admin/packets"
	"github.com/pharos-media/pharos/internal/model"
)

type PlaylistController struct {
	store db.Store
}

func NewPlaylistController(store db.Store) *PlaylistController {
	return &PlaylistController{store: store}
}

func PlaylistModule(store db.Store) api.Module {
	ctl := NewPlaylistController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/playlists", ctl.listPlaylists)
		c.POST("/playlists", ctl.createPlaylist)
		c.GET("/playlists/:id", ctl.getPlaylist)
		c.PUT("/playlists/:id", ctl.updatePlaylist)
		c.DELETE("/playlists/:id", ctl.deletePlaylist)

		c.POST("/playlists/:id/items", ctl.addItem)
		c.DELETE("/playlists/:id/items/:item_id", ctl.removeItem)
	})
}

func (p *PlaylistController) listPlaylists(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := p.store.ListPlaylists(user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list playlists"}
	}
	return list, nil
}

func (p *PlaylistController) createPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	playlist, err := p.store.CreatePlaylist(user.TenantID, request.Name, request.Description)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create playlist"}
	}
	return playlist, nil
}

func (p *PlaylistController) getPlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlist, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return playlist, nil
}

func (p *PlaylistController) updatePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlist, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdatePlaylistRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if err := p.store.UpdatePlaylist(playlist.ID, request.Name, request.Description); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update playlist"}
	}
	return gin.H{"message": "updated"}, nil
}

func (p *PlaylistController) deletePlaylist(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlist, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := p.store.DeletePlaylist(playlist.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete playlist"}
	}
	return gin.H{"message": "deleted"}, nil
}

func (p *PlaylistController) addItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	playlist, apiErr := p.ownedPlaylist(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.AddPlaylistItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	content, err := p.store.GetContentByID(request.ContentID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}
	if content.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	item, err := p.store.AddItemToPlaylist(playlist.ID, request.ContentID, request.Position, request.Duration)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add item"}
	}
	return item, nil
}

func (p *PlaylistController) removeItem(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	if _, apiErr := p.ownedPlaylist(ctx, user); apiErr != nil {
		return nil, apiErr
	}

	itemID, err := strconv.Atoi(ctx.Param("item_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid item id"}
	}

	if err := p.store.RemovePlaylistItem(itemID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove item"}
	}
	return gin.H{"message": "removed"}, nil
}

func (p *PlaylistController) ownedPlaylist(ctx *gin.Context, user *model.User) (model.Playlist, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return model.Playlist{}, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	playlist, err := p.store.GetPlaylistByID(id)
	if err != nil {
		return model.Playlist{}, &api.APIError{Code: http.StatusNotFound, Message: "playlist not found"}
	}
	if playlist.TenantID != user.TenantID {
		return model.Playlist{}, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}
	return playlist, nil
}

package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pharos-media/pharos/internal/db"
	"github.com/pharos-media/pharos/internal/http/api"
	"github.com/pharos-media/pharos/internal/model"
	"github.com/pharos-media/pharos/internal/storage"
)

type ContentController struct {
	store         db.Store
	storageSystem storage.Storage
}

func NewContentController(store db.Store, storageSystem storage.Storage) *ContentController {
	return &ContentController{store: store, storageSystem: storageSystem}
}

func ContentModule(store db.Store, storageSystem storage.Storage) api.Module {
	ctl := NewContentController(store, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/content", ctl.listContent)
		c.POST("/content", ctl.uploadContent)
		c.DELETE("/content/:id", ctl.deleteContent)
	})
}

func (cc *ContentController) listContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := cc.store.ListContent(user.TenantID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list content"}
	}
	return list, nil
}

// uploadContent accepts a multipart form with "name", "type" and "file"
// fields, stores the file, and records its URL.
func (cc *ContentController) uploadContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	name := ctx.PostForm("name")
	contentType := ctx.PostForm("type")
	if name == "" || contentType == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "name and type are required"}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	url, err := cc.storageSystem.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Msg("content upload failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store file"}
	}

	content, err := cc.store.CreateContent(user.TenantID, name, contentType, url)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create content"}
	}
	return content, nil
}

func (cc *ContentController) deleteContent(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	content, err := cc.store.GetContentByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "content not found"}
	}
	if content.TenantID != user.TenantID {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "forbidden"}
	}

	if err := cc.store.DeleteContent(id); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not delete content"}
	}
	return gin.H{"message": "deleted"}, nil
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharos-media/pharos/internal/http/middleware"
	"github.com/pharos-media/pharos/internal/model"
	"github.com/pharos-media/pharos/internal/schedule"
)

// APIError is the uniform error envelope handlers return. Details carries
// structured payloads such as aggregated field errors.
type APIError struct {
	Code    int
	Message string
	Details any
}

type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// ValidationFailure maps an aggregated validation error onto the transport:
// 409 for conflicts with existing schedules, 422 for structural rule
// failures, with every field error in the body.
func ValidationFailure(verr *schedule.ValidationError) *APIError {
	code := http.StatusUnprocessableEntity
	if verr.HasConflict() {
		code = http.StatusConflict
	}
	return &APIError{Code: code, Message: "schedule validation failed", Details: verr}
}

func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiError := h(ctx, user)
		if apiError != nil {
			writeError(ctx, apiError)
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiError := h(ctx)
		if apiError != nil {
			writeError(ctx, apiError)
			return
		}

		ctx.JSON(http.StatusOK, result)
	}
}

func writeError(ctx *gin.Context, apiError *APIError) {
	body := gin.H{"error": apiError.Message}
	if apiError.Details != nil {
		body["details"] = apiError.Details
	}
	ctx.JSON(apiError.Code, body)
}

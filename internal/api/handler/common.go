package handler

import (
	"strconv"

	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
)

// resolveActor builds the request actor from the identity the auth
// middleware stored on the gin context.
func resolveActor(c *gin.Context, actorSvc service.ActorService) (*service.Actor, error) {
	userID := c.GetUint64("user_id")

	globalAdmin := false
	for _, role := range c.GetStringSlice("roles") {
		if role == consts.RoleGlobalAdmin {
			globalAdmin = true
			break
		}
	}

	return actorSvc.ResolveActor(c.Request.Context(), userID, globalAdmin)
}

func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}

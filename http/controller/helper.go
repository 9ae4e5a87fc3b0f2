package controller

import (
	"github.com/KacperKuznik/image-hosting-api/entity"
	"github.com/gin-gonic/gin"
)

// principal returns the authenticated user placed in the context by the auth
// middleware, or nil on unauthenticated routes.
func principal(c *gin.Context) *entity.User {
	v, ok := c.Get("principal")
	if !ok {
		return nil
	}
	user, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return user
}

package middleware

import (
	"strings"

	"ClinicCore/apperr"
	"ClinicCore/config"
	"ClinicCore/role"
	"ClinicCore/util"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

/*
* Decode the bearer token and stash the identity in the request context
* Every protected route runs through here before any role check
 */
func JWTAuth(jwtMgr *config.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			err := apperr.InvalidToken(util.TOKEN_NOT_PROVIDED)
			c.AbortWithStatusJSON(apperr.Status(err), util.FailedResponse(err))
			return
		}
		ident, err := jwtMgr.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), util.FailedResponse(err))
			return
		}
		c.Set(identityKey, *ident)
		c.Next()
	}
}

/*
* Gate a route on the allowed-role set
 */
func Authorize(allowed ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		var err error
		if !ok {
			err = role.Authorize(nil, allowed...)
		} else {
			err = role.Authorize(&ident, allowed...)
		}
		if err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), util.FailedResponse(err))
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (role.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return role.Identity{}, false
	}
	ident, ok := v.(role.Identity)
	return ident, ok
}

package middleware

import (
	userRepo "homely/database/repository/user"
	"homely/models"
	"homely/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware authenticates admin sessions. Admins are user accounts
// carrying the admin role; their role claim is re-checked against the stored
// account so a stale token cannot outlive a demotion.
func JWTAuthAdminMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			abortUnauthorized(c)
			return
		}

		adminID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || adminID == "" || role != models.RoleAdmin {
			abortUnauthorized(c)
			return
		}

		computedHash := utils.HashToken(tokenString)

		usr, err := users.GetByID(adminID)
		if err != nil || usr == nil || usr.Role != models.RoleAdmin || usr.TokenHash != computedHash {
			abortUnauthorized(c)
			return
		}

		c.Set("adminID", adminID)
		c.Next()
	}
}

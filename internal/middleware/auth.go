package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/utils"
)

// ModeratorAuthMiddleware 驗證請求帶有目標會議的主持人 token
// token 的授權範圍是單一會議，對其他會議的路由無效
func ModeratorAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 從請求頭中獲取 Authorization 字段
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// 檢查 Authorization 頭的格式
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		// 解析主持人 token
		claims, err := utils.ParseToken(parts[1], secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// token 必須對應路由中的會議
		if claims.MeetingID != c.Param("id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "無權操作此會議"})
			c.Abort()
			return
		}

		c.Set("meetingID", claims.MeetingID)
		c.Next()
	}
}

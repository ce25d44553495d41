package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/service"
	"meeting_web/internal/utils"
)

// TokenHandler 負責換發主持人 token
type TokenHandler struct {
	meetingService *service.MeetingService
	secret         string
	tokenTTL       time.Duration
}

// NewTokenHandler 創建一個新的 TokenHandler 實例
func NewTokenHandler(meetingService *service.MeetingService, secret string, tokenTTL time.Duration) *TokenHandler {
	return &TokenHandler{
		meetingService: meetingService,
		secret:         secret,
		tokenTTL:       tokenTTL,
	}
}

// ModeratorTokenInput 定義換發主持人 token 請求的結構
type ModeratorTokenInput struct {
	ModeratorKey string `json:"moderator_key"`
}

// IssueModeratorToken 核對主持人金鑰後簽發 token
// 會議未設定金鑰時不需要帶請求體
func (h *TokenHandler) IssueModeratorToken(c *gin.Context) {
	var input ModeratorTokenInput
	// 金鑰是可選的，空請求體視為沒有金鑰
	_ = c.ShouldBindJSON(&input)

	meetingID := c.Param("id")
	if err := h.meetingService.VerifyModeratorKey(meetingID, input.ModeratorKey); err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(meetingID, h.secret, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "獲取token失敗"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

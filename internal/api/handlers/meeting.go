package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting_web/internal/agenda"
	"meeting_web/internal/service"
)

// MeetingHandler 處理與會議相關的請求
type MeetingHandler struct {
	meetingService *service.MeetingService
}

// NewMeetingHandler 創建一個新的 MeetingHandler 實例
func NewMeetingHandler(meetingService *service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// CreateMeetingInput 定義創建會議請求的結構
type CreateMeetingInput struct {
	MeetingName  string `json:"meeting_name" binding:"required"`
	ModeratorKey string `json:"moderator_key"` // 可選，設定後換發主持人 token 需要核對
}

// CreateMeeting 處理創建新會議的請求
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	var input CreateMeetingInput
	// 解析並驗證請求體
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrMissingMeetingName.Error()})
		return
	}

	meeting, err := h.meetingService.CreateMeeting(input.MeetingName, input.ModeratorKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

// GetMeeting 處理獲取會議完整狀態的請求
func (h *MeetingHandler) GetMeeting(c *gin.Context) {
	meeting, err := h.meetingService.GetMeeting(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// AddAgendaItemInput 定義加入議程項目請求的結構
// Item 保持原始 JSON，交給議程編解碼器驗證
type AddAgendaItemInput struct {
	Item json.RawMessage `json:"item" binding:"required"`
}

// AddAgendaItem 處理加入議程項目的請求
func (h *MeetingHandler) AddAgendaItem(c *gin.Context) {
	var input AddAgendaItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 item 欄位"})
		return
	}

	item, err := h.meetingService.AddAgendaItem(c.Param("id"), input.Item)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "議程項目已加入", "item": item})
}

// ListAgendaItems 處理獲取議程項目列表的請求
func (h *MeetingHandler) ListAgendaItems(c *gin.Context) {
	items, err := h.meetingService.ListAgendaItems(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AdvancePointerInput 定義指標推進請求的結構
// 用指標型別讓 0 也能通過 required 驗證
type AdvancePointerInput struct {
	CurrentItem *int `json:"current_item" binding:"required"`
}

// AdvancePointer 處理推進議程指標的請求
func (h *MeetingHandler) AdvancePointer(c *gin.Context) {
	var input AdvancePointerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidIndex.Error()})
		return
	}

	meeting, err := h.meetingService.AdvancePointer(c.Param("id"), *input.CurrentItem)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// LookupByCode 處理以會議代碼查詢識別碼的請求
// 查無會議回傳空物件而不是 404，猜錯代碼是正常情況
func (h *MeetingHandler) LookupByCode(c *gin.Context) {
	meetingID, err := h.meetingService.LookupByCode(c.Query("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if meetingID == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting_id": meetingID})
}

// respondServiceError 將服務層錯誤轉成對應的 HTTP 回應
// 驗證類錯誤帶結構化內容讓呼叫端能修正後重試，
// 其餘錯誤一律視為暫時性的服務問題
func respondServiceError(c *gin.Context, err error) {
	var outOfRangeErr *service.IndexOutOfRangeError
	var variantErr *agenda.VariantFieldError

	switch {
	case errors.Is(err, service.ErrMeetingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &outOfRangeErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           outOfRangeErr.Error(),
			"max_valid_index": outOfRangeErr.MaxValidIndex,
			"agenda_items":    outOfRangeErr.AgendaItems,
		})
	case errors.As(err, &variantErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": variantErr.Error(), "field": variantErr.Field})
	case errors.Is(err, service.ErrInvalidMeetingID),
		errors.Is(err, service.ErrInvalidCodeFormat),
		errors.Is(err, service.ErrMissingMeetingName),
		errors.Is(err, service.ErrInvalidIndex),
		errors.Is(err, agenda.ErrMalformedItem),
		errors.Is(err, agenda.ErrInvalidItemType),
		errors.Is(err, agenda.ErrMissingTitle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidModeratorKey):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服務暫時無法使用"})
	}
}

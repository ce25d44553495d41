package service

import (
	"errors"
	"fmt"
)

// 會議操作可能回傳的驗證錯誤
// 這些錯誤都是請求層級的，呼叫端收到後可以修正輸入重試
var (
	ErrMeetingNotFound     = errors.New("會議不存在")
	ErrInvalidMeetingID    = errors.New("無效的會議識別碼")
	ErrInvalidCodeFormat   = errors.New("無效的會議代碼格式")
	ErrMissingMeetingName  = errors.New("會議名稱不可為空")
	ErrInvalidIndex        = errors.New("無效的議程索引")
	ErrInvalidModeratorKey = errors.New("主持人金鑰不正確")
	ErrCodeSpaceExhausted  = errors.New("無法分配會議代碼，請稍後再試")
)

// IndexOutOfRangeError 表示指標推進的目標索引超出議程範圍
// 附帶目前的項目數量與最大合法索引，讓呼叫端能修正後重試
type IndexOutOfRangeError struct {
	MaxValidIndex int
	AgendaItems   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("議程索引超出範圍，最大合法索引為 %d（共 %d 個項目）", e.MaxValidIndex, e.AgendaItems)
}

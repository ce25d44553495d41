package models

import (
	"gorm.io/gorm"
)

// Meeting 表示一場會議
// MeetingID 與 MeetingCode 在建立後不可變更，CurrentItem 只能透過
// 議程指標推進操作修改
type Meeting struct {
	gorm.Model
	MeetingID        string       `gorm:"uniqueIndex;not null" json:"meeting_id"`   // 對外的會議識別碼（UUID）
	Name             string       `gorm:"not null" json:"meeting_name"`             // 會議名稱，不可為空
	MeetingCode      string       `gorm:"uniqueIndex;not null" json:"meeting_code"` // 六位數字的查詢代碼
	CurrentItem      int          `gorm:"not null;default:0" json:"current_item"`   // 目前議程項目的索引（從 0 開始）
	ModeratorKeyHash string       `gorm:"type:text" json:"-"`                       // 主持人金鑰的 bcrypt 雜湊，可為空
	AgendaItems      []AgendaItem `gorm:"foreignKey:MeetingID;references:MeetingID" json:"-"`
}

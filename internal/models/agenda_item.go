package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// AgendaItemType 定義議程項目類型的類型
type AgendaItemType string

const (
	AgendaItemElection AgendaItemType = "election" // 選舉項目
	AgendaItemMotion   AgendaItemType = "motion"   // 動議項目
	AgendaItemInfo     AgendaItemType = "info"     // 資訊項目
)

// BaseMotion 表示動議項目中的一筆基礎動議
type BaseMotion struct {
	Owner  string `json:"owner"`
	Motion string `json:"motion"`
}

// AgendaItem 表示一個議程項目
// 三種類型共用同一張表，依 Type 決定哪些欄位有效：
//
//	election: Positions
//	motion:   Description + BaseMotions
//	info:     Description
//
// 項目建立後不會被修改或刪除，插入順序即議程順序
type AgendaItem struct {
	gorm.Model
	MeetingID   string         `gorm:"index;not null"`         // 所屬會議的識別碼
	Type        AgendaItemType `gorm:"type:varchar(20);not null"`
	Title       string         `gorm:"type:text;not null"`
	Description string         `gorm:"type:text"`
	Positions   []string       `gorm:"serializer:json"` // 候選職位名稱列表，僅 election 使用
	BaseMotions []BaseMotion   `gorm:"serializer:json"` // 僅 motion 使用
}

// MarshalJSON 依項目類型輸出對應的欄位
// 序列化結果只包含該類型定義的欄位，不多也不少
func (i AgendaItem) MarshalJSON() ([]byte, error) {
	switch i.Type {
	case AgendaItemElection:
		positions := i.Positions
		if positions == nil {
			positions = []string{}
		}
		return json.Marshal(struct {
			Type      AgendaItemType `json:"type"`
			Title     string         `json:"title"`
			Positions []string       `json:"positions"`
		}{i.Type, i.Title, positions})
	case AgendaItemMotion:
		baseMotions := i.BaseMotions
		if baseMotions == nil {
			baseMotions = []BaseMotion{}
		}
		return json.Marshal(struct {
			Type        AgendaItemType `json:"type"`
			Title       string         `json:"title"`
			Description string         `json:"description"`
			BaseMotions []BaseMotion   `json:"baseMotions"`
		}{i.Type, i.Title, i.Description, baseMotions})
	case AgendaItemInfo:
		return json.Marshal(struct {
			Type        AgendaItemType `json:"type"`
			Title       string         `json:"title"`
			Description string         `json:"description"`
		}{i.Type, i.Title, i.Description})
	default:
		return nil, &json.UnsupportedValueError{Str: "unknown agenda item type: " + string(i.Type)}
	}
}

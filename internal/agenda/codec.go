// Package agenda 負責議程項目的驗證與正規化。
//
// 所有來自外部的議程項目輸入都必須經過這裡才能寫入資料庫，
// 這個包是三種項目類型唯一的建構邊界。
package agenda

import (
	"encoding/json"
	"errors"
	"fmt"

	"meeting_web/internal/models"
)

var (
	// ErrMalformedItem 表示輸入不是一個合法的 JSON 物件
	ErrMalformedItem = errors.New("議程項目不是合法的 JSON 物件")
	// ErrInvalidItemType 表示 type 欄位缺少或不在三種類型之內
	ErrInvalidItemType = errors.New("無效的議程項目類型")
	// ErrMissingTitle 表示 title 欄位缺少或為空
	ErrMissingTitle = errors.New("議程項目缺少標題")
)

// VariantFieldError 表示某個類型專屬欄位缺少或形狀不正確
type VariantFieldError struct {
	Field string
}

func (e *VariantFieldError) Error() string {
	return fmt.Sprintf("議程項目欄位無效: %s", e.Field)
}

// ParseItem 驗證一筆未受信任的議程項目輸入並回傳正規化後的記錄
//
// 驗證依序短路：type → title → 類型專屬欄位。
// 成功時輸出只保留該類型定義的欄位，多餘的輸入欄位會被丟棄。
// ParseItem 不做任何 I/O，相同輸入永遠得到相同結果。
func ParseItem(data []byte) (*models.AgendaItem, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, ErrMalformedItem
	}

	itemType, ok := stringField(fields, "type")
	if !ok {
		return nil, ErrInvalidItemType
	}
	switch models.AgendaItemType(itemType) {
	case models.AgendaItemElection, models.AgendaItemMotion, models.AgendaItemInfo:
	default:
		return nil, ErrInvalidItemType
	}

	title, ok := stringField(fields, "title")
	if !ok || title == "" {
		return nil, ErrMissingTitle
	}

	item := &models.AgendaItem{
		Type:  models.AgendaItemType(itemType),
		Title: title,
	}

	switch item.Type {
	case models.AgendaItemElection:
		positions, ok := stringSliceField(fields, "positions")
		if !ok {
			return nil, &VariantFieldError{Field: "positions"}
		}
		item.Positions = positions
	case models.AgendaItemMotion:
		description, ok := stringField(fields, "description")
		if !ok {
			return nil, &VariantFieldError{Field: "description"}
		}
		baseMotions, ok := baseMotionsField(fields, "baseMotions")
		if !ok {
			return nil, &VariantFieldError{Field: "baseMotions"}
		}
		item.Description = description
		item.BaseMotions = baseMotions
	case models.AgendaItemInfo:
		description, ok := stringField(fields, "description")
		if !ok {
			return nil, &VariantFieldError{Field: "description"}
		}
		item.Description = description
	}

	return item, nil
}

// stringField 取出一個必須是字串的欄位，缺少、為 null 或型別不符都視為失敗
func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

// stringSliceField 取出一個必須是字串陣列的欄位，空陣列是合法的
func stringSliceField(fields map[string]json.RawMessage, name string) ([]string, bool) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	value := []string{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return value, true
}

// baseMotionsField 取出基礎動議列表，每筆記錄都必須帶 owner 與 motion
func baseMotionsField(fields map[string]json.RawMessage, name string) ([]models.BaseMotion, bool) {
	raw, ok := fields[name]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	var records []struct {
		Owner  *string `json:"owner"`
		Motion *string `json:"motion"`
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false
	}
	baseMotions := make([]models.BaseMotion, 0, len(records))
	for _, record := range records {
		if record.Owner == nil || record.Motion == nil {
			return nil, false
		}
		baseMotions = append(baseMotions, models.BaseMotion{
			Owner:  *record.Owner,
			Motion: *record.Motion,
		})
	}
	return baseMotions, true
}

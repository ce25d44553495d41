package models

// Event 代表一則透過 WebSocket 廣播給房間成員的事件
// Data 在序列化時內嵌為事件的酬載
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// 房間廣播使用的事件名稱
const (
	EventStatus          = "status"           // 加入/離開通知
	EventAgendaItemAdded = "agenda_item_added"
	EventNextAgendaItem  = "Next Agenda Item" // 指標變更事件，名稱沿用前端既有協定
	EventMeetingUpdated  = "meeting_updated"  // 完整會議狀態快照
)

// NewStatusEvent 建立一則房間狀態通知
func NewStatusEvent(meetingID, message string) *Event {
	return &Event{
		Event: EventStatus,
		Data: map[string]interface{}{
			"meeting_id": meetingID,
			"message":    message,
		},
	}
}

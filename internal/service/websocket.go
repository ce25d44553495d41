package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"meeting_web/internal/models"
)

// Client 代表一個 WebSocket 客戶端連接
// 一個連接可以同時加入多個會議房間
type Client struct {
	Conn     *websocket.Conn    // WebSocket 連接
	SendChan chan *models.Event // 事件發送通道，用於異步傳送事件
	done     chan struct{}      // 連接結束時關閉，通知 writePump 退出

	rooms map[string]bool // 已加入的會議房間，由 manager 的鎖保護
}

// controlMessage 是客戶端送進來的房間控制消息
type controlMessage struct {
	Action    string `json:"action"`     // "join" 或 "leave"
	MeetingID string `json:"meeting_id"` // 目標會議
}

// WebSocketManager 管理所有的 WebSocket 連接與房間廣播
// 房間成員是行程內的暫態狀態，不做持久化，重啟後由客戶端重新加入
type WebSocketManager struct {
	rooms    map[string]map[*Client]bool // 兩層 map: meetingID -> client -> bool
	roomsMux sync.RWMutex                // 用於保護 rooms map 的讀寫鎖
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		rooms: make(map[string]map[*Client]bool),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求
// 阻塞直到連接關閉，關閉時自動離開所有已加入的房間
func (s *WebSocketManager) HandleConnection(conn *websocket.Conn) {
	client := &Client{
		Conn:     conn,
		SendChan: make(chan *models.Event, 256), // 設置緩衝大小為 256 的事件通道
		done:     make(chan struct{}),
		rooms:    make(map[string]bool),
	}

	// 確保連接關閉時清理資源，斷線視同離開所有房間
	defer func() {
		s.removeClientFromAllRooms(client)
		conn.Close()
		close(client.done)
	}()

	// 啟動讀寫處理
	go s.writePump(client)
	s.readPump(client)
}

// JoinRoom 將客戶端加入指定會議的房間，重複加入不會有副作用
func (s *WebSocketManager) JoinRoom(client *Client, meetingID string) {
	s.roomsMux.Lock()
	if s.rooms[meetingID] == nil {
		s.rooms[meetingID] = make(map[*Client]bool)
	}
	already := s.rooms[meetingID][client]
	s.rooms[meetingID][client] = true
	client.rooms[meetingID] = true
	s.roomsMux.Unlock()

	if already {
		return
	}
	// 通知必須在釋放鎖之後送出，廣播本身也需要讀鎖
	s.BroadcastToRoom(meetingID, models.NewStatusEvent(meetingID, "一位參與者加入了會議"))
}

// LeaveRoom 將客戶端移出指定會議的房間
func (s *WebSocketManager) LeaveRoom(client *Client, meetingID string) {
	s.roomsMux.Lock()
	member := false
	if clients, ok := s.rooms[meetingID]; ok && clients[client] {
		member = true
		delete(clients, client)
		// 如果房間空了，刪除房間
		if len(clients) == 0 {
			delete(s.rooms, meetingID)
		}
	}
	delete(client.rooms, meetingID)
	s.roomsMux.Unlock()

	if !member {
		return
	}
	s.BroadcastToRoom(meetingID, models.NewStatusEvent(meetingID, "一位參與者離開了會議"))
}

// BroadcastToRoom 向房間內當下的所有成員廣播事件
// 送出即不追蹤：之後才加入的成員收不到，廣播途中斷線的成員直接錯過。
// 同一個呼叫端連續兩次廣播對每個成員保持先後順序，
// 因為成員快照後是同步逐一排入各自的發送通道
func (s *WebSocketManager) BroadcastToRoom(meetingID string, event *models.Event) {
	s.roomsMux.RLock()
	members := make([]*Client, 0, len(s.rooms[meetingID]))
	for client := range s.rooms[meetingID] {
		members = append(members, client)
	}
	s.roomsMux.RUnlock()

	for _, client := range members {
		select {
		case client.SendChan <- event:
			// 事件成功加入發送隊列
		default:
			// 客戶端事件隊列已滿，視為失聯，移除並關閉連接
			s.removeClientFromAllRooms(client)
			client.Conn.Close()
		}
	}
}

// GetRoomClients 獲取指定房間的在線客戶端數量
func (s *WebSocketManager) GetRoomClients(meetingID string) int {
	s.roomsMux.RLock()
	defer s.roomsMux.RUnlock()

	return len(s.rooms[meetingID])
}

// readPump 持續監聽客戶端送來的房間控制消息
func (s *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(4096) // 設置最大消息大小為 4KB
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Msg("websocket unexpected close")
			}
			break
		}

		var msg controlMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Warn().Err(err).Msg("bad control message")
			continue
		}

		switch msg.Action {
		case "join":
			s.JoinRoom(client, msg.MeetingID)
		case "leave":
			s.LeaveRoom(client, msg.MeetingID)
		default:
			log.Warn().Str("action", msg.Action).Msg("unknown control action")
		}
	}
}

// writePump 處理向客戶端發送事件的邏輯
func (s *WebSocketManager) writePump(client *Client) {
	// 設置心跳檢查計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case event := <-client.SendChan:
			// 設置寫入超時
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			if err := client.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			// 發送心跳包
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-client.done:
			return
		}
	}
}

// removeClientFromAllRooms 將客戶端移出所有已加入的房間並送出離開通知
func (s *WebSocketManager) removeClientFromAllRooms(client *Client) {
	s.roomsMux.Lock()
	left := make([]string, 0, len(client.rooms))
	for meetingID := range client.rooms {
		if clients, ok := s.rooms[meetingID]; ok && clients[client] {
			delete(clients, client)
			if len(clients) == 0 {
				delete(s.rooms, meetingID)
			}
			left = append(left, meetingID)
		}
		delete(client.rooms, meetingID)
	}
	s.roomsMux.Unlock()

	for _, meetingID := range left {
		s.BroadcastToRoom(meetingID, models.NewStatusEvent(meetingID, "一位參與者離開了會議"))
	}
}

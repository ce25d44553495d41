package service

import (
	"meeting_web/internal/repository"
)

type Services struct {
	Meeting    *MeetingService
	Identifier *IdentifierService
	WebSocket  *WebSocketManager
}

func NewServices(repos *repository.Repositories) *Services {
	wsManager := NewWebSocketManager()
	identifier := NewIdentifierService(repos.Meeting)
	meetingService := NewMeetingService(repos.Meeting, repos.AgendaItem, identifier, wsManager)

	return &Services{
		Meeting:    meetingService,
		Identifier: identifier,
		WebSocket:  wsManager,
	}
}

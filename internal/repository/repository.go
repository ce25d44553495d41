package repository

import "meeting_web/internal/storage"

type Repositories struct {
	Meeting    MeetingRepository
	AgendaItem AgendaItemRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		Meeting:    NewMeetingRepository(db),
		AgendaItem: NewAgendaItemRepository(db),
	}
}

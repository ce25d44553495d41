package repository

import (
	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

type AgendaItemRepository interface {
	Create(item *models.AgendaItem) error
	// FindByMeetingID 依插入順序回傳會議的所有議程項目
	FindByMeetingID(meetingID string) ([]models.AgendaItem, error)
	CountByMeetingID(meetingID string) (int64, error)
}

type agendaItemRepository struct {
	db *storage.PostgresDB
}

func NewAgendaItemRepository(db *storage.PostgresDB) AgendaItemRepository {
	return &agendaItemRepository{db: db}
}

func (r *agendaItemRepository) Create(item *models.AgendaItem) error {
	return r.db.Create(item).Error
}

func (r *agendaItemRepository) FindByMeetingID(meetingID string) ([]models.AgendaItem, error) {
	var items []models.AgendaItem
	err := r.db.Where("meeting_id = ?", meetingID).Order("id asc").Find(&items).Error
	return items, err
}

func (r *agendaItemRepository) CountByMeetingID(meetingID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.AgendaItem{}).Where("meeting_id = ?", meetingID).Count(&count).Error
	return count, err
}

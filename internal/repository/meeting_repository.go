package repository

import (
	"meeting_web/internal/models"
	"meeting_web/internal/storage"
)

type MeetingRepository interface {
	Create(meeting *models.Meeting) error
	FindByMeetingID(meetingID string) (*models.Meeting, error)
	FindByCode(code string) (*models.Meeting, error)
	// UpdateFields 對單一會議做部分欄位更新，欄位名稱使用資料庫欄位名
	UpdateFields(meetingID string, fields map[string]interface{}) error
}

type meetingRepository struct {
	db *storage.PostgresDB
}

func NewMeetingRepository(db *storage.PostgresDB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(meeting *models.Meeting) error {
	return r.db.Create(meeting).Error
}

func (r *meetingRepository) FindByMeetingID(meetingID string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.Where("meeting_id = ?", meetingID).First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) FindByCode(code string) (*models.Meeting, error) {
	var meeting models.Meeting
	err := r.db.Where("meeting_code = ?", code).First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) UpdateFields(meetingID string, fields map[string]interface{}) error {
	return r.db.Model(&models.Meeting{}).Where("meeting_id = ?", meetingID).Updates(fields).Error
}

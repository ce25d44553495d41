package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"meeting_web/internal/agenda"
	"meeting_web/internal/models"
	"meeting_web/internal/repository"
)

// Broadcaster 是會議服務對房間廣播的最小依賴
type Broadcaster interface {
	BroadcastToRoom(meetingID string, event *models.Event)
}

// Meeting 是對外輸出的會議投影，合併會議記錄與其有序的議程項目
type Meeting struct {
	MeetingID   string              `json:"meeting_id"`
	Name        string              `json:"meeting_name"`
	MeetingCode string              `json:"meeting_code"`
	CurrentItem int                 `json:"current_item"`
	Items       []models.AgendaItem `json:"items"`
}

// MeetingService 串接識別碼產生、議程驗證、持久化與房間廣播
// 所有寫入都先通過驗證再提交，提交成功後才觸發廣播；
// 廣播失敗不會回滾已持久化的狀態
type MeetingService struct {
	meetingRepo repository.MeetingRepository
	agendaRepo  repository.AgendaItemRepository
	identifier  *IdentifierService
	broadcaster Broadcaster
}

func NewMeetingService(
	meetingRepo repository.MeetingRepository,
	agendaRepo repository.AgendaItemRepository,
	identifier *IdentifierService,
	broadcaster Broadcaster,
) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		agendaRepo:  agendaRepo,
		identifier:  identifier,
		broadcaster: broadcaster,
	}
}

// CreateMeeting 建立一場新會議
// 識別碼與查詢代碼由 IdentifierService 分配，議程一開始是空的。
// moderatorKey 可以為空，設定時以 bcrypt 雜湊後儲存
func (s *MeetingService) CreateMeeting(name, moderatorKey string) (*Meeting, error) {
	if name == "" {
		return nil, ErrMissingMeetingName
	}

	meetingID := s.identifier.NewMeetingID()
	code, err := s.identifier.NewMeetingCode()
	if err != nil {
		return nil, err
	}

	var keyHash string
	if moderatorKey != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(moderatorKey), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		keyHash = string(hashed)
	}

	meetingModel := &models.Meeting{
		MeetingID:        meetingID,
		Name:             name,
		MeetingCode:      code,
		CurrentItem:      0,
		ModeratorKeyHash: keyHash,
	}

	// 代碼欄位帶唯一索引，極罕見的並發撞碼會在這裡被資料庫擋下
	if err := s.meetingRepo.Create(meetingModel); err != nil {
		return nil, err
	}

	log.Info().Str("meeting_id", meetingID).Str("meeting_code", code).Msg("meeting created")
	return s.convertModelToMeeting(meetingModel, []models.AgendaItem{}), nil
}

// GetMeeting 回傳會議與其有序議程的完整投影
func (s *MeetingService) GetMeeting(meetingID string) (*Meeting, error) {
	meetingModel, err := s.findMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	items, err := s.agendaRepo.FindByMeetingID(meetingModel.MeetingID)
	if err != nil {
		return nil, err
	}

	return s.convertModelToMeeting(meetingModel, items), nil
}

// ListAgendaItems 依插入順序回傳會議的議程項目
func (s *MeetingService) ListAgendaItems(meetingID string) ([]models.AgendaItem, error) {
	meetingModel, err := s.findMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	items, err := s.agendaRepo.FindByMeetingID(meetingModel.MeetingID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.AgendaItem{}
	}
	return items, nil
}

// AddAgendaItem 驗證並加入一個議程項目，成功後廣播給房間成員
// 不會變動 current_item
func (s *MeetingService) AddAgendaItem(meetingID string, rawItem []byte) (*models.AgendaItem, error) {
	meetingModel, err := s.findMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	item, err := agenda.ParseItem(rawItem)
	if err != nil {
		return nil, err
	}

	item.MeetingID = meetingModel.MeetingID
	if err := s.agendaRepo.Create(item); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToRoom(meetingModel.MeetingID, &models.Event{
		Event: models.EventAgendaItemAdded,
		Data: map[string]interface{}{
			"meeting_id": meetingModel.MeetingID,
			"item":       item,
		},
	})

	return item, nil
}

// AdvancePointer 將 current_item 移到指定索引
// 邊界檢查讀取當下的項目數量；議程項目只增不減，
// 所以檢查通過後即使有並發插入，索引仍然有效。
// 成功後依序廣播指標變更事件與完整狀態快照
func (s *MeetingService) AdvancePointer(meetingID string, newIndex int) (*Meeting, error) {
	meetingModel, err := s.findMeeting(meetingID)
	if err != nil {
		return nil, err
	}

	if newIndex < 0 {
		return nil, ErrInvalidIndex
	}

	count, err := s.agendaRepo.CountByMeetingID(meetingModel.MeetingID)
	if err != nil {
		return nil, err
	}
	if int64(newIndex) >= count {
		maxValidIndex := int(count) - 1
		if maxValidIndex < 0 {
			maxValidIndex = 0
		}
		return nil, &IndexOutOfRangeError{
			MaxValidIndex: maxValidIndex,
			AgendaItems:   int(count),
		}
	}

	if err := s.meetingRepo.UpdateFields(meetingModel.MeetingID, map[string]interface{}{
		"current_item": newIndex,
	}); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToRoom(meetingModel.MeetingID, &models.Event{
		Event: models.EventNextAgendaItem,
		Data: map[string]interface{}{
			"meeting_id":   meetingModel.MeetingID,
			"current_item": newIndex,
		},
	})

	meeting, err := s.GetMeeting(meetingModel.MeetingID)
	if err != nil {
		// 指標已持久化，快照讀取失敗只影響這次的通知與回應
		log.Warn().Err(err).Str("meeting_id", meetingModel.MeetingID).Msg("failed to load meeting snapshot")
		return nil, err
	}

	s.broadcaster.BroadcastToRoom(meetingModel.MeetingID, &models.Event{
		Event: models.EventMeetingUpdated,
		Data:  meeting,
	})

	return meeting, nil
}

// LookupByCode 以六位數代碼查詢會議識別碼
// 查無會議不是錯誤：猜錯代碼是正常情況，回傳空字串
func (s *MeetingService) LookupByCode(code string) (string, error) {
	if err := s.identifier.ValidateMeetingCode(code); err != nil {
		return "", err
	}

	meetingModel, err := s.meetingRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return meetingModel.MeetingID, nil
}

// VerifyModeratorKey 核對會議的主持人金鑰
// 會議未設定金鑰時視為開放會議，任何人都能取得主持人 token
func (s *MeetingService) VerifyModeratorKey(meetingID, moderatorKey string) error {
	meetingModel, err := s.findMeeting(meetingID)
	if err != nil {
		return err
	}

	if meetingModel.ModeratorKeyHash == "" {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(meetingModel.ModeratorKeyHash), []byte(moderatorKey)); err != nil {
		return ErrInvalidModeratorKey
	}
	return nil
}

// findMeeting 先正規化識別碼再查詢，查無資料轉成 ErrMeetingNotFound
func (s *MeetingService) findMeeting(meetingID string) (*models.Meeting, error) {
	canonical, err := s.identifier.ValidateMeetingID(meetingID)
	if err != nil {
		return nil, err
	}

	meetingModel, err := s.meetingRepo.FindByMeetingID(canonical)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMeetingNotFound
	}
	if err != nil {
		return nil, err
	}
	return meetingModel, nil
}

func (s *MeetingService) convertModelToMeeting(model *models.Meeting, items []models.AgendaItem) *Meeting {
	if items == nil {
		items = []models.AgendaItem{}
	}
	return &Meeting{
		MeetingID:   model.MeetingID,
		Name:        model.Name,
		MeetingCode: model.MeetingCode,
		CurrentItem: model.CurrentItem,
		Items:       items,
	}
}

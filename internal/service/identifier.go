package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"meeting_web/internal/repository"
)

// maxCodeAttempts 限制會議代碼重抽的次數
// 活躍會議數遠低於一百萬時碰撞機率極低，抽滿仍失敗代表代碼空間接近耗盡，
// 與其無限重試不如直接回報錯誤
const maxCodeAttempts = 100

// IdentifierService 負責產生與驗證會議識別碼和查詢代碼
type IdentifierService struct {
	meetingRepo repository.MeetingRepository
}

func NewIdentifierService(meetingRepo repository.MeetingRepository) *IdentifierService {
	return &IdentifierService{meetingRepo: meetingRepo}
}

// NewMeetingID 產生一個新的會議識別碼
// 使用 128 位元隨機 UUID，碰撞機率可忽略，不另做唯一性檢查
func (s *IdentifierService) NewMeetingID() string {
	return uuid.NewString()
}

// ValidateMeetingID 驗證識別碼格式並回傳正規化後的形式
func (s *IdentifierService) ValidateMeetingID(meetingID string) (string, error) {
	parsed, err := uuid.Parse(meetingID)
	if err != nil {
		return "", ErrInvalidMeetingID
	}
	return parsed.String(), nil
}

// NewMeetingCode 產生一個未被使用的六位數字會議代碼
// 每次從整個代碼空間均勻抽取，撞到既有會議就重抽
func (s *IdentifierService) NewMeetingCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := fmt.Sprintf("%06d", rand.Intn(1000000))

		_, err := s.meetingRepo.FindByCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
		// 代碼已被占用，重抽
	}
	return "", ErrCodeSpaceExhausted
}

// ValidateMeetingCode 檢查會議代碼格式：必須恰好六個十進位數字
func (s *IdentifierService) ValidateMeetingCode(code string) error {
	if len(code) != 6 {
		return ErrInvalidCodeFormat
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return ErrInvalidCodeFormat
		}
	}
	return nil
}

package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting_web/internal/models"
)

func TestNewMeetingID(t *testing.T) {
	svc := NewIdentifierService(newFakeMeetingRepo())

	first := svc.NewMeetingID()
	second := svc.NewMeetingID()
	assert.NotEqual(t, first, second)

	canonical, err := svc.ValidateMeetingID(first)
	require.NoError(t, err)
	assert.Equal(t, first, canonical)
}

func TestValidateMeetingID(t *testing.T) {
	svc := NewIdentifierService(newFakeMeetingRepo())

	// 大寫輸入正規化為小寫標準形式
	canonical, err := svc.ValidateMeetingID("0B1C2D3E-0000-4000-8000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, "0b1c2d3e-0000-4000-8000-000000000000", canonical)

	for _, id := range []string{"", "not-a-uuid", "12345"} {
		_, err := svc.ValidateMeetingID(id)
		assert.ErrorIs(t, err, ErrInvalidMeetingID, "id %q", id)
	}
}

func TestNewMeetingCodeFormat(t *testing.T) {
	svc := NewIdentifierService(newFakeMeetingRepo())

	code, err := svc.NewMeetingCode()
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)
	assert.NoError(t, svc.ValidateMeetingCode(code))
}

// collidingMeetingRepo 拒絕第一個被查詢的代碼，模擬撞碼後重抽
type collidingMeetingRepo struct {
	*fakeMeetingRepo
	taken   string
	queried []string
}

func (r *collidingMeetingRepo) FindByCode(code string) (*models.Meeting, error) {
	r.queried = append(r.queried, code)
	if r.taken == "" {
		r.taken = code
	}
	if code == r.taken {
		return &models.Meeting{MeetingCode: code}, nil
	}
	return r.fakeMeetingRepo.FindByCode(code)
}

func TestNewMeetingCodeRetriesOnCollision(t *testing.T) {
	repo := &collidingMeetingRepo{fakeMeetingRepo: newFakeMeetingRepo()}
	svc := NewIdentifierService(repo)

	code, err := svc.NewMeetingCode()
	require.NoError(t, err)

	assert.NotEqual(t, repo.taken, code)
	assert.GreaterOrEqual(t, len(repo.queried), 2)
}

func TestValidateMeetingCode(t *testing.T) {
	svc := NewIdentifierService(newFakeMeetingRepo())

	assert.NoError(t, svc.ValidateMeetingCode("000000"))
	assert.NoError(t, svc.ValidateMeetingCode("987654"))

	invalid := []string{"", "12345", "1234567", "12345a", "abcdef", " 23456", "12 456"}
	for _, code := range invalid {
		assert.ErrorIs(t, svc.ValidateMeetingCode(code), ErrInvalidCodeFormat, "code %q", code)
	}
	// 非 ASCII 字元也不行，即使長度看起來是六
	assert.Error(t, svc.ValidateMeetingCode(strings.Repeat("六", 1)+"23456"))
}

func TestGeneratedCodesMostlyDistinct(t *testing.T) {
	svc := NewIdentifierService(newFakeMeetingRepo())

	seen := make(map[string]bool)
	duplicates := 0
	for i := 0; i < 200; i++ {
		code, err := svc.NewMeetingCode()
		require.NoError(t, err)
		if seen[code] {
			duplicates++
		}
		seen[code] = true
	}
	// 200 次抽取撞碼的期望值遠小於 1，允許極端運氣下的個位數重複
	assert.LessOrEqual(t, duplicates, 2)
}

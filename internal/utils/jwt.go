package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims 是主持人 token 的內容，授權範圍是單一會議
type Claims struct {
	MeetingID string `json:"meeting_id"`
	jwt.StandardClaims
}

// GenerateToken 為指定會議簽發一個新的主持人 token
func GenerateToken(meetingID, secret string, ttl time.Duration) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(ttl)

	claims := Claims{
		MeetingID: meetingID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString([]byte(secret))
}

// ParseToken 解析和驗證主持人 token
func ParseToken(token, secret string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	return nil, err
}

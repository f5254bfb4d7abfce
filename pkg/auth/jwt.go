package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/yourusername/study-api/internal/domain/entity"
)

// CookieName — имя cookie с access-токеном
const CookieName = "access_token"

// JWTClaims представляет кастомные JWT-утверждения
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService выпускает и проверяет access-токены
type JWTService struct {
	secret        []byte
	expirationHrs int
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int) *JWTService {
	if expirationHrs <= 0 {
		expirationHrs = 72
	}
	return &JWTService{
		secret:        []byte(secret),
		expirationHrs: expirationHrs,
	}
}

// TokenLifetime возвращает срок жизни выпускаемых токенов
func (s *JWTService) TokenLifetime() time.Duration {
	return time.Duration(s.expirationHrs) * time.Hour
}

// GenerateToken создает подписанный JWT для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenLifetime())),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWTService] failed to sign token for user %d: %v", user.ID, err)
		return "", err
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок токена, возвращает его утверждения
func (s *JWTService) ParseToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/auriko/image-vault/utils"
	"github.com/golang-jwt/jwt/v5"
)

// JWTService JWT Token 服务
type JWTService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewJWTService 创建新的 JWT 服务
// secret 为空时生成随机密钥（重启后已签发的令牌全部失效）
func NewJWTService(secret string, expiresIn time.Duration) (*JWTService, error) {
	if secret == "" {
		random, err := utils.GenerateRandomToken(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = random
		log.Println("[Warning] jwt_secret not configured, using a random secret")
	}

	if expiresIn <= 0 {
		expiresIn = 2 * time.Hour
	}

	return &JWTService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}, nil
}

// GenerateToken 为用户生成访问令牌
func (s *JWTService) GenerateToken(userID uint, username string) (string, time.Time, error) {
	now := time.Now()
	expiry := now.Add(s.expiresIn)

	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      expiry.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiry, nil
}

// ParseToken 解析并验证访问令牌
func (s *JWTService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountsRepo "github.com/auriko/image-vault/database/repo/accounts"
	cryptopackage "github.com/auriko/image-vault/utils/crypto"
)

// ErrInvalidCredentials 凭据无效错误
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenResult 登录成功后返回的令牌信息
type TokenResult struct {
	AccessToken       string
	AccessTokenExpiry time.Time
}

// LoginService 登录服务
type LoginService struct {
	accounts *accountsRepo.Repository
	jwt      *JWTService
}

// NewLoginService 创建登录服务
func NewLoginService(accounts *accountsRepo.Repository, jwt *JWTService) *LoginService {
	return &LoginService{accounts: accounts, jwt: jwt}
}

// Login 验证用户凭据并签发访问令牌
func (s *LoginService) Login(ctx context.Context, username, password string) (*TokenResult, error) {
	user, err := s.accounts.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accountsRepo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	valid, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	accessToken, expiry, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &TokenResult{
		AccessToken:       accessToken,
		AccessTokenExpiry: expiry,
	}, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oleksandr5440/QC-Management/internal/config"
	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already registered")
	ErrUserInactive       = errors.New("user account is disabled")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

// AuthService 用户注册、登录与令牌签发
type AuthService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, rdb: rdb, cfg: cfg}
}

// TokenPair 访问令牌 + 刷新令牌
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Register 注册新用户，用户名与邮箱查重
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	role := req.Role
	if role == "" {
		role = entity.RoleInspector
	}
	user := &entity.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
		IsActive: true,
	}
	if req.Department != "" {
		user.Department = &req.Department
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login 用户名或邮箱 + 密码登录
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if !user.VerifyPassword(password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrUserInactive
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken 用刷新令牌换新的令牌对
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidRefresh
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidRefresh
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, ErrInvalidRefresh
	}

	// 刷新令牌jti必须仍在redis白名单内
	userIDStr, err := s.rdb.Get(ctx, "token:refresh:"+jti).Result()
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	var userID uint
	if _, err := fmt.Sscanf(userIDStr, "%d", &userID); err != nil {
		return nil, ErrInvalidRefresh
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// 旧刷新令牌作废，换发新对
	s.rdb.Del(ctx, "token:refresh:"+jti)
	return s.generateTokenPair(ctx, user)
}

// Logout 作废用户当前刷新令牌
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	userKey := fmt.Sprintf("token:user:%d", userID)
	jti, err := s.rdb.Get(ctx, userKey).Result()
	if err == nil && jti != "" {
		s.rdb.Del(ctx, "token:refresh:"+jti)
	}
	return s.rdb.Del(ctx, userKey).Err()
}

// GetCurrentUser 当前用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":      user.Username,
		"uid":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iss":      s.cfg.JWT.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshJti := uuid.New().String()
	refreshClaims := jwt.MapClaims{
		"sub": user.Username,
		"jti": refreshJti,
		"iss": s.cfg.JWT.Issuer,
		"iat": now.Unix(),
		"exp": now.Add(s.cfg.JWT.RefreshTokenExpire).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	if err := s.rdb.Set(ctx, "token:refresh:"+refreshJti, fmt.Sprintf("%d", user.ID),
		s.cfg.JWT.RefreshTokenExpire).Err(); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	// 记录用户当前jti，注销时据此作废
	s.rdb.Set(ctx, fmt.Sprintf("token:user:%d", user.ID), refreshJti, s.cfg.JWT.RefreshTokenExpire)

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int64(s.cfg.JWT.AccessTokenExpire.Seconds()),
	}, nil
}

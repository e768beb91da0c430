package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/oleksandr5440/QC-Management/internal/qc/entity"
	"github.com/oleksandr5440/QC-Management/internal/qc/repository"
	"github.com/oleksandr5440/QC-Management/internal/qc/service"
)

// AuthHandler 认证与用户管理处理器
type AuthHandler struct {
	service  *service.AuthService
	userRepo *repository.UserRepository
}

func NewAuthHandler(svc *service.AuthService, userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{service: svc, userRepo: userRepo}
}

// Register 用户注册
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			BadRequest(c, "用户名或邮箱已存在")
			return
		}
		InternalError(c, "注册失败: "+err.Error())
		return
	}
	Created(c, user)
}

// Login 用户登录（用户名或邮箱）
// POST /api/auth/login
// POST /api/auth/token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, tokens, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			Unauthorized(c, "用户名或密码错误")
		case errors.Is(err, service.ErrUserInactive):
			Forbidden(c, "账号已停用")
		default:
			InternalError(c, "登录失败: "+err.Error())
		}
		return
	}

	Success(c, gin.H{
		"user":          user,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"token_type":    tokens.TokenType,
		"expires_in":    tokens.ExpiresIn,
	})
}

// Refresh 刷新令牌
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	tokens, err := h.service.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			Unauthorized(c, "refresh token 无效或已过期")
			return
		}
		InternalError(c, "刷新令牌失败: "+err.Error())
		return
	}
	Success(c, tokens)
}

// Logout 注销当前用户的refresh token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), GetUserID(c)); err != nil {
		InternalError(c, "注销失败: "+err.Error())
		return
	}
	Success(c, nil)
}

// Me 当前用户信息
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, "获取用户信息失败: "+err.Error())
		return
	}
	Success(c, user)
}

// UpdateMe 更新当前用户资料
// PUT /api/auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req struct {
		Email      *string `json:"email"`
		Department *string `json:"department"`
		Password   *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, "获取用户信息失败: "+err.Error())
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Department != nil {
		user.Department = req.Department
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			InternalError(c, "更新密码失败: "+err.Error())
			return
		}
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		InternalError(c, "更新用户失败: "+err.Error())
		return
	}
	Success(c, user)
}

// ListUsers 用户列表（管理员）
// GET /api/users
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		InternalError(c, "获取用户列表失败: "+err.Error())
		return
	}
	Success(c, users)
}

// UpdateUser 更新用户角色/状态（管理员）
// PUT /api/users/:id
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "用户不存在")
			return
		}
		InternalError(c, "获取用户信息失败: "+err.Error())
		return
	}

	if req.Role != nil {
		switch *req.Role {
		case entity.RoleAdmin, entity.RoleManager, entity.RoleInspector, entity.RoleViewer:
			user.Role = *req.Role
		default:
			BadRequest(c, "无效的角色: "+*req.Role)
			return
		}
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		InternalError(c, "更新用户失败: "+err.Error())
		return
	}
	Success(c, user)
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"path-system/model"
	"path-system/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenIssuer JWT 签发者
const tokenIssuer = "path-system"

// tokenTTL Token 有效期
const tokenTTL = 24 * time.Hour

// Claims JWT 载荷
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email"`
}

// MemoryUsers 内存用户表 (未连接数据库时使用)
type MemoryUsers struct {
	mu     sync.RWMutex
	nextID uint
	users  map[string]*model.User
}

// NewMemoryUsers 创建内存用户表
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]*model.User)}
}

// FindByUsername 根据用户名查找用户
func (m *MemoryUsers) FindByUsername(username string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Create 创建用户
func (m *MemoryUsers) Create(user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Username]; exists {
		return model.ErrUserExists
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	u := *user
	m.users[user.Username] = &u
	return nil
}

// IssueToken 为用户签发 JWT
func (h *Handler) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// Login 处理用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "请求参数错误")
		return
	}

	// 查找用户
	user, err := h.Users.FindByUsername(req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "用户名或密码错误")
		return
	}
	if err != nil {
		slog.Error("find user failed", slog.Any("error", err))
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "查询用户失败")
		return
	}

	// 验证密码
	if !utils.CheckPassword(user.Password, req.Password) {
		abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "用户名或密码错误")
		return
	}

	tokenString, err := h.IssueToken(user)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "生成 Token 失败")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    tokenString,
		Username: user.Username,
		Message:  "登录成功",
	})
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "请求参数错误")
		return
	}

	// 加密密码
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "密码加密失败")
		return
	}

	newUser := &model.User{
		Username: req.Username,
		Password: hashedPassword,
		Email:    req.Email,
	}
	err = h.Users.Create(newUser)
	if errors.Is(err, model.ErrUserExists) {
		abortWithError(c, http.StatusConflict, "USER_EXISTS", "用户名已存在")
		return
	}
	if err != nil {
		slog.Error("create user failed", slog.Any("error", err))
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "创建用户失败")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "注册成功",
		"username": newUser.Username,
	})
}

// AuthMiddleware JWT 认证中间件
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "未提供 Token")
			return
		}

		// 移除 "Bearer " 前缀
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		// 解析 Token
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			return h.JWTSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))

		if err != nil || !token.Valid {
			abortWithError(c, http.StatusUnauthorized, CodeUnauthorized, "无效的 Token")
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

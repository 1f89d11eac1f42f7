package handler

import (
	"net/http"

	"path-system/algo"
	"path-system/extract"
	"path-system/model"

	"github.com/gin-gonic/gin"
)

// 错误码, 随 "error" 一起返回给前端
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeLocationNotFound = "LOCATION_NOT_FOUND"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
)

// UserStore 用户存储 (数据库或内存)
type UserStore interface {
	FindByUsername(username string) (*model.User, error)
	Create(user *model.User) error
}

// Handler 持有请求处理所需的全部依赖, 由 main 注入
type Handler struct {
	Graph     *algo.Graph
	Users     UserStore
	JWTSecret []byte
	// Extract 在线提取接口的默认参数, 请求中的字段会覆盖它
	Extract extract.Params
	// MaxUploadPixels 上传栅格的像素上限, <= 0 表示不限制
	MaxUploadPixels int
	Metrics         *Metrics
}

// DefaultMaxUploadPixels 约 4000 万像素, 足够容纳整张 PATH 地图
const DefaultMaxUploadPixels = 40_000_000

// New 创建 Handler
func New(graph *algo.Graph, users UserStore, secret []byte) *Handler {
	return &Handler{
		Graph:     graph,
		Users:     users,
		JWTSecret: secret,
		Extract:   extract.DefaultParams(),

		MaxUploadPixels: DefaultMaxUploadPixels,
	}
}

// RegisterRoutes 配置路由
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	if h.Metrics != nil {
		r.Use(h.Metrics.Middleware())
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "ok",
		})
	})

	api := r.Group("/api")
	{
		// 公开接口 (无需认证)
		api.POST("/login", h.Login)
		api.POST("/register", h.Register)

		// 地图相关接口
		api.POST("/path/find", h.FindPath)
		api.GET("/graph", h.GetGraph)
		api.GET("/nodes", h.GetNodes)
		api.GET("/nodes/nearest", h.NearestNode)
		api.GET("/nodes/:id", h.GetNodeByID)
		api.GET("/pois", h.GetPOIs)
		api.GET("/pois/search", h.SearchPOIs)
		api.GET("/pois/:id", h.GetPOIByID)
		api.POST("/locate", h.Locate)

		admin := api.Group("/admin")
		admin.Use(h.AuthMiddleware())
		{
			admin.POST("/extract", h.ExtractGraph)
		}
	}
}

func abortWithError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "code": code})
}

// graph 检查地图是否已加载
func (h *Handler) graph(c *gin.Context) (*algo.Graph, bool) {
	if h.Graph == nil {
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "地图数据未加载")
		return nil, false
	}
	return h.Graph, true
}

package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"path-system/config"
	"path-system/db"
	"path-system/handler"
	"path-system/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	fmt.Println("=== PATH 室内步行导航服务 ===")

	// 1. 读取配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// 2. 选择图数据来源, 数据库模式下首次运行会把图文件与 POI 目录导入数据库
	var source store.Source = store.FileSource{GraphPath: cfg.GraphPath, POIPath: cfg.POIPath}
	var users handler.UserStore = handler.NewMemoryUsers()
	if cfg.GraphSource == config.SourcePostgres {
		conn, err := db.Open(cfg.Database.DB())
		if err != nil {
			log.Fatalf("数据库连接失败: %v", err)
		}
		if err := seedDatabase(conn, source); err != nil {
			log.Fatalf("导入地图数据失败: %v", err)
		}
		source = db.Source{DB: conn}
		users = db.UserRepository{DB: conn}
	}

	// 3. 加载地图 (只加载一次)
	loader := store.NewLoader(source, cfg.Calibration)
	graph, err := loader.Graph()
	if err != nil {
		log.Fatalf("加载地图失败: %v", err)
	}
	slog.Info("地图加载成功",
		slog.String("source", cfg.GraphSource),
		slog.Int("nodes", len(graph.NodeList)),
		slog.Int("edges", len(graph.Edges)),
		slog.Int("pois", len(graph.POIs)),
		slog.Float64("meters_per_pixel", graph.Calibrator().MetersPerPixel()),
	)

	// 4. 初始化 Gin 引擎
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := handler.New(graph, users, []byte(cfg.JWTSecret))
	h.Metrics = handler.NewMetrics(reg)
	h.MaxUploadPixels = cfg.MaxUploadPixels

	r := gin.Default()
	setupRoutes(r, h, reg)

	// 5. 启动服务器
	fmt.Printf("访问地址: http://localhost:%s\n", cfg.Port)
	fmt.Println("API 文档:")
	fmt.Println("  - POST   /api/login          - 用户登录")
	fmt.Println("  - POST   /api/register       - 用户注册")
	fmt.Println("  - POST   /api/path/find      - 路径规划")
	fmt.Println("  - GET    /api/pois           - 获取所有地点")
	fmt.Println("  - GET    /api/pois/search    - 搜索地点")
	fmt.Println("  - GET    /api/nodes          - 获取所有节点")
	fmt.Println("  - GET    /api/nodes/nearest  - 最近节点")
	fmt.Println("  - POST   /api/locate         - 识别结果映射到地点")
	fmt.Println("  - POST   /api/admin/extract  - 在线提取地图 (需要 Token)")
	fmt.Println("  - GET    /metrics            - Prometheus 指标")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}

// seedDatabase 数据库为空时从文件导入, 没有图文件时直接使用数据库中已有的数据
func seedDatabase(conn *gorm.DB, files store.Source) error {
	data, err := files.LoadGraphFile()
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("图文件不存在, 跳过导入", slog.String("error", err.Error()))
		return nil
	}
	if err != nil {
		return err
	}
	pois, err := files.LoadPOIs()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	imported, err := db.ImportIfEmpty(conn, data, pois)
	if err != nil {
		return err
	}
	if imported {
		slog.Info("已将图文件导入数据库", slog.Int("nodes", len(data.Nodes)), slog.Int("pois", len(pois)))
	}
	return nil
}

// setupRoutes 配置路由
func setupRoutes(r *gin.Engine, h *handler.Handler, reg *prometheus.Registry) {
	// CORS 跨域中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	h.RegisterRoutes(r)
}

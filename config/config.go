package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"path-system/algo"
	"path-system/db"

	"gopkg.in/yaml.v3"
)

// 图数据来源
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// DefaultJWTSecret 仅用于本地开发的 JWT 密钥
const DefaultJWTSecret = "change-me-in-production"

// Config 服务配置
type Config struct {
	Port            string           `yaml:"port"`
	GraphPath       string           `yaml:"graph_path"`
	POIPath         string           `yaml:"poi_path"`
	GraphSource     string           `yaml:"graph_source"` // file 或 postgres
	JWTSecret       string           `yaml:"jwt_secret"`
	LogLevel        string           `yaml:"log_level"`
	MaxUploadPixels int              `yaml:"max_upload_pixels"` // 在线提取接口的栅格像素上限
	Calibration     algo.Calibration `yaml:"calibration"`
	Database        DatabaseConfig   `yaml:"database"`
}

// DatabaseConfig PostgreSQL 配置
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DB 转换为 db 包使用的配置
func (d DatabaseConfig) DB() db.Config {
	return db.Config{Host: d.Host, Port: d.Port, User: d.User, Password: d.Password, Name: d.Name, RetryDelay: 2 * time.Second}
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Port:            "8080",
		GraphPath:       "data/path.graph.json",
		POIPath:         "data/pois.yaml",
		GraphSource:     SourceFile,
		JWTSecret:       DefaultJWTSecret,
		LogLevel:        "info",
		MaxUploadPixels: 40_000_000,
		Calibration:     algo.DefaultCalibration(),
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "pathuser",
			Password: "pathpassword",
			Name:     "pathnav",
		},
	}
}

// Load 加载配置: 默认值 <- CONFIG_FILE 指定的 YAML 文件 <- 环境变量
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	env := func(key string, target *string) {
		if v := getenv(key); v != "" {
			*target = v
		}
	}
	num := func(key string, target *float64) {
		v := getenv(key)
		if v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			slog.Warn("忽略无效的数值配置", slog.String("key", key), slog.String("value", v))
			return
		}
		*target = f
	}

	if v := getenv("MAX_UPLOAD_PIXELS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxUploadPixels = n
		} else {
			slog.Warn("忽略无效的数值配置", slog.String("key", "MAX_UPLOAD_PIXELS"), slog.String("value", v))
		}
	}

	env("PORT", &c.Port)
	env("GRAPH_PATH", &c.GraphPath)
	env("POI_PATH", &c.POIPath)
	env("GRAPH_SOURCE", &c.GraphSource)
	env("JWT_SECRET", &c.JWTSecret)
	env("LOG_LEVEL", &c.LogLevel)

	num("METERS_PER_PIXEL", &c.Calibration.MetersPerPixel)
	num("WALKING_SPEED_M_PER_MIN", &c.Calibration.WalkingSpeed)
	num("STEP_LENGTH_M", &c.Calibration.StepLength)
	num("METERS_PER_GRID_COL", &c.Calibration.MetersPerGridCol)
	num("METERS_PER_GRID_ROW", &c.Calibration.MetersPerGridRow)

	env("DB_HOST", &c.Database.Host)
	env("DB_PORT", &c.Database.Port)
	env("DB_USER", &c.Database.User)
	env("DB_PASSWORD", &c.Database.Password)
	env("DB_NAME", &c.Database.Name)
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	c.GraphSource = strings.ToLower(c.GraphSource)
	if c.GraphSource != SourceFile && c.GraphSource != SourcePostgres {
		return fmt.Errorf("未知的图数据来源: %q", c.GraphSource)
	}
	if c.GraphPath == "" {
		return fmt.Errorf("GRAPH_PATH 不能为空")
	}
	if c.Calibration.WalkingSpeed <= 0 || c.Calibration.StepLength <= 0 {
		return fmt.Errorf("步行速度与步长必须为正数")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET 不能为空")
	}
	if c.JWTSecret == DefaultJWTSecret {
		slog.Warn("正在使用默认的 JWT 密钥, 生产环境请设置 JWT_SECRET")
	}
	return nil
}

// SlogLevel 日志级别
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

package db

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"path-system/model"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Config 数据库连接配置
type Config struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	MaxRetries int
	RetryDelay time.Duration
}

// DSN 拼接 PostgreSQL 连接串
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=America/Toronto",
		c.Host, c.User, c.Password, c.Name, c.Port,
	)
}

// EdgeRow 边在数据库中的存储形式
type EdgeRow struct {
	ID         uint   `gorm:"primaryKey"`
	Seq        int    `gorm:"index"` // 在图文件中的顺序
	From       string `gorm:"index;not null"`
	To         string `gorm:"index;not null"`
	Meters     *float64
	Pixels     *float64
	Accessible *bool
}

// TableName 数据库表名
func (EdgeRow) TableName() string { return "edges" }

// MetaRow 地图尺寸, 只有一行
type MetaRow struct {
	ID     uint `gorm:"primaryKey"`
	Width  int
	Height int
}

// TableName 数据库表名
func (MetaRow) TableName() string { return "graph_meta" }

// NodeRow 节点在数据库中的存储形式, 保留文件中的顺序
type NodeRow struct {
	Seq    int    `gorm:"primaryKey;autoIncrement:false"`
	NodeID string `gorm:"uniqueIndex;not null"`
	X      float64
	Y      float64
	Level  int
}

// TableName 数据库表名
func (NodeRow) TableName() string { return "nodes" }

// Keywords POI 关键词, PostgreSQL 中存为 text[], 其他数据库存为文本
type Keywords pq.StringArray

// Value 实现 driver.Valuer
func (k Keywords) Value() (driver.Value, error) {
	return pq.StringArray(k).Value()
}

// Scan 实现 sql.Scanner
func (k *Keywords) Scan(src any) error {
	return (*pq.StringArray)(k).Scan(src)
}

// GormDBDataType 按数据库方言选择列类型
func (Keywords) GormDBDataType(conn *gorm.DB, _ *schema.Field) string {
	if conn.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// POIRow POI 目录的存储形式
type POIRow struct {
	Seq      int    `gorm:"primaryKey;autoIncrement:false"`
	POIID    string `gorm:"column:poi_id;uniqueIndex;not null"`
	Name     string `gorm:"index;not null"`
	Category string
	GridRef  string
	Keywords Keywords
}

// TableName 数据库表名
func (POIRow) TableName() string { return "pois" }

// Open 连接 PostgreSQL 并自动迁移表结构.
// 带重试 (Docker 启动时数据库可能还没准备好).
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 30
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	var (
		conn *gorm.DB
		err  error
	)
	for i := 0; i < cfg.MaxRetries; i++ {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		slog.Warn("等待数据库就绪", slog.Int("attempt", i+1), slog.Int("max", cfg.MaxRetries), slog.String("error", err.Error()))
		time.Sleep(cfg.RetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate 自动迁移模式 (自动创建表结构)
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&model.User{}, &MetaRow{}, &NodeRow{}, &EdgeRow{}, &POIRow{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// ImportIfEmpty 数据库中还没有图时, 导入图文件与 POI 目录.
// 以 graph_meta 是否有记录判断, 没有节点的图同样只导入一次.
func ImportIfEmpty(conn *gorm.DB, data *model.GraphFile, pois []model.POI) (bool, error) {
	var count int64
	if err := conn.Model(&MetaRow{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询 meta 失败: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	slog.Info("检测到数据库为空, 正在导入图数据", slog.Int("nodes", len(data.Nodes)), slog.Int("edges", len(data.Edges)))
	return true, Import(conn, data, pois)
}

// Import 在一个事务中写入整张图
func Import(conn *gorm.DB, data *model.GraphFile, pois []model.POI) error {
	if data.Meta == nil {
		return errors.New("图文件缺少 meta")
	}
	meta, nodes, edges, poiRows := ToRows(data, pois)

	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("写入 meta 失败: %w", err)
		}
		if len(nodes) > 0 {
			if err := tx.CreateInBatches(&nodes, 500).Error; err != nil {
				return fmt.Errorf("插入节点失败: %w", err)
			}
		}
		if len(edges) > 0 {
			if err := tx.CreateInBatches(&edges, 500).Error; err != nil {
				return fmt.Errorf("插入边失败: %w", err)
			}
		}
		if len(poiRows) > 0 {
			if err := tx.CreateInBatches(&poiRows, 100).Error; err != nil {
				return fmt.Errorf("插入 POI 失败: %w", err)
			}
		}
		return nil
	})
}

// ToRows 图文件转换为数据库行
func ToRows(data *model.GraphFile, pois []model.POI) (MetaRow, []NodeRow, []EdgeRow, []POIRow) {
	meta := MetaRow{ID: 1}
	if data.Meta != nil {
		meta.Width, meta.Height = data.Meta.Width, data.Meta.Height
	}

	nodes := make([]NodeRow, len(data.Nodes))
	for i, n := range data.Nodes {
		nodes[i] = NodeRow{Seq: i, NodeID: n.ID, X: n.X, Y: n.Y, Level: n.Level}
	}
	edges := make([]EdgeRow, len(data.Edges))
	for i, e := range data.Edges {
		edges[i] = EdgeRow{Seq: i, From: e.From, To: e.To, Meters: e.Meters, Pixels: e.Pixels, Accessible: e.Accessible}
	}
	poiRows := make([]POIRow, len(pois))
	for i, p := range pois {
		poiRows[i] = POIRow{Seq: i, POIID: p.ID, Name: p.Name, Category: p.Category, GridRef: p.GridRef, Keywords: Keywords(p.Keywords)}
	}
	return meta, nodes, edges, poiRows
}

// FromRows 数据库行还原为图文件
func FromRows(meta MetaRow, nodes []NodeRow, edges []EdgeRow) *model.GraphFile {
	data := &model.GraphFile{
		Meta:  &model.Meta{Width: meta.Width, Height: meta.Height},
		Nodes: make([]model.Node, len(nodes)),
		Edges: make([]model.Edge, len(edges)),
		POIs:  []model.POI{},
	}
	for i, n := range nodes {
		data.Nodes[i] = model.Node{ID: n.NodeID, X: n.X, Y: n.Y, Level: n.Level}
	}
	for i, e := range edges {
		data.Edges[i] = model.Edge{From: e.From, To: e.To, Meters: e.Meters, Pixels: e.Pixels, Accessible: e.Accessible}
	}
	return data
}

// Source 从数据库读取图, 实现 store.Source
type Source struct {
	DB *gorm.DB
}

// LoadGraphFile 按导入顺序读取 meta / 节点 / 边
func (s Source) LoadGraphFile() (*model.GraphFile, error) {
	var meta MetaRow
	if err := s.DB.First(&meta).Error; err != nil {
		return nil, fmt.Errorf("读取 meta 失败: %w", err)
	}
	var nodes []NodeRow
	if err := s.DB.Order("seq").Find(&nodes).Error; err != nil {
		return nil, fmt.Errorf("读取节点失败: %w", err)
	}
	var edges []EdgeRow
	if err := s.DB.Order("seq").Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("读取边失败: %w", err)
	}
	return FromRows(meta, nodes, edges), nil
}

// LoadPOIs 按目录顺序读取 POI
func (s Source) LoadPOIs() ([]model.POI, error) {
	var rows []POIRow
	if err := s.DB.Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("读取 POI 失败: %w", err)
	}
	pois := make([]model.POI, len(rows))
	for i, r := range rows {
		pois[i] = model.POI{ID: r.POIID, Name: r.Name, Category: r.Category, GridRef: r.GridRef, Keywords: pq.StringArray(r.Keywords)}
	}
	return pois, nil
}

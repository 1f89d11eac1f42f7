package model

import "github.com/lib/pq"

// POI 兴趣点 (目的地)
// Name/Category/GridRef 为人工整理的字段, X/Y/NodeID 在加载图时推导
type POI struct {
	ID       string         `json:"id" yaml:"id" validate:"required"`
	Name     string         `json:"name" yaml:"name" validate:"required"`
	Category string         `json:"category,omitempty" yaml:"category"`
	GridRef  string         `json:"grid,omitempty" yaml:"grid"`         // 粗略网格定位, 如 "F6"
	Keywords pq.StringArray `json:"keywords,omitempty" yaml:"keywords"` // 入库时为 text[]

	X      *float64 `json:"x,omitempty" yaml:"-"`
	Y      *float64 `json:"y,omitempty" yaml:"-"`
	NodeID string   `json:"nodeId,omitempty" yaml:"-"`
}

// Resolved 是否已经吸附到图上的某个节点
func (p POI) Resolved() bool {
	return p.NodeID != ""
}

// RouteStats 路线统计 (派生数据)
type RouteStats struct {
	Meters  float64 `json:"meters"`
	Minutes int     `json:"minutes"`
	Steps   int     `json:"steps"`
}

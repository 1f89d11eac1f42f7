package model

// DefaultLevel 提取流程生成的节点统一使用的楼层编号
const DefaultLevel = 1

// Node 对应图上的一个可通行采样点 (像素坐标)
type Node struct {
	ID    string  `json:"id" validate:"required"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Level int     `json:"level,omitempty"` // 楼层, 缺省为 1
}

// Meta 地图栅格的尺寸 (像素)
type Meta struct {
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

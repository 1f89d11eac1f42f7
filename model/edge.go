package model

// Edge 两个节点之间的一条无向连线
type Edge struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`

	// Meters 人工标注的真实距离 (米), 存在时优先使用
	Meters *float64 `json:"meters,omitempty" validate:"omitempty,gte=0"`
	// Pixels 提取流程写入的像素长度, 运行时按比例尺换算成米
	Pixels *float64 `json:"pixels,omitempty" validate:"omitempty,gte=0"`
	// Accessible 为 nil 时视为无障碍可通行
	Accessible *bool `json:"accessible,omitempty"`
}

// IsAccessible 判断该边是否可供无障碍通行 (未标注时默认可通行)
func (e Edge) IsAccessible() bool {
	return e.Accessible == nil || *e.Accessible
}

// GraphFile 持久化的图文件结构 (离线流程的唯一产物)
type GraphFile struct {
	Meta  *Meta  `json:"meta" validate:"required"`
	Nodes []Node `json:"nodes" validate:"required,dive"`
	Edges []Edge `json:"edges" validate:"required,dive"`
	POIs  []POI  `json:"pois"`
}

// Float64 返回指向 v 的指针, 方便构造可选字段
func Float64(v float64) *float64 { return &v }

// Bool 返回指向 v 的指针
func Bool(v bool) *bool { return &v }

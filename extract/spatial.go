package extract

import (
	"math"

	"path-system/model"
)

// Cell 网格单元坐标
type Cell struct {
	X, Y int
}

// SpatialIndex 将节点划分到边长为 R 的正方形单元中,
// 邻近查询只需检查 3x3 个单元, 候选对数量接近线性
type SpatialIndex struct {
	size  float64
	nodes []model.Node
	cells map[Cell][]int
}

// NewSpatialIndex 为节点建立索引, size 为单元边长 (即连接半径)
func NewSpatialIndex(nodes []model.Node, size float64) (*SpatialIndex, error) {
	if size <= 0 || math.IsNaN(size) {
		return nil, ErrBadRadius
	}
	idx := &SpatialIndex{
		size:  size,
		nodes: nodes,
		cells: make(map[Cell][]int),
	}
	for i, n := range nodes {
		c := idx.CellOf(n)
		idx.cells[c] = append(idx.cells[c], i)
	}
	return idx, nil
}

// CellOf 节点所在的单元
func (s *SpatialIndex) CellOf(n model.Node) Cell {
	return Cell{
		X: int(math.Floor(n.X / s.size)),
		Y: int(math.Floor(n.Y / s.size)),
	}
}

// Bucket 某个单元中的节点下标 (按插入顺序)
func (s *SpatialIndex) Bucket(c Cell) []int {
	return s.cells[c]
}

// Len 非空单元个数
func (s *SpatialIndex) Len() int {
	return len(s.cells)
}

// Neighbors 返回节点 i 所在单元及其 8 个相邻单元中的全部节点下标 (包含 i 自身)
func (s *SpatialIndex) Neighbors(i int) []int {
	c := s.CellOf(s.nodes[i])
	var out []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			out = append(out, s.Bucket(Cell{X: c.X + dx, Y: c.Y + dy})...)
		}
	}
	return out
}

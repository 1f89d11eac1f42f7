package extract

import (
	"path-system/model"
	"path-system/utils"
)

// BuildEdges 连接距离不超过 radius 的节点对.
// 只考虑下标 j > i 的候选, 因此不会产生重复边或自环.
// 边权保存为像素长度, 换算成米在寻路时完成.
func BuildEdges(nodes []model.Node, radius float64) ([]model.Edge, error) {
	idx, err := NewSpatialIndex(nodes, radius)
	if err != nil {
		return nil, err
	}

	var edges []model.Edge
	for i := range nodes {
		for _, j := range idx.Neighbors(i) {
			if j <= i {
				continue
			}
			dist := utils.PixelDistance(nodes[i], nodes[j])
			if dist > radius {
				continue
			}
			edges = append(edges, model.Edge{
				From:       nodes[i].ID,
				To:         nodes[j].ID,
				Pixels:     model.Float64(dist),
				Accessible: model.Bool(true),
			})
		}
	}
	return edges, nil
}

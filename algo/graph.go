package algo

import (
	"fmt"
	"log/slog"

	"path-system/model"
)

// Neighbor 邻接表中的一项 (已换算成米)
type Neighbor struct {
	To         string
	Meters     float64
	Accessible bool
}

// Graph 图结构, 用于路径规划. 构建完成后只读, 可以被多个请求并发使用.
type Graph struct {
	Meta     model.Meta
	Nodes    map[string]*model.Node // 节点字典 (ID -> Node)
	NodeList []model.Node           // 节点列表 (保持文件中的顺序)
	Edges    []model.Edge
	AdjList  map[string][]Neighbor // 邻接表 (ID -> 邻居), 每条边双向各一项
	POIs     []model.POI           // 已解析坐标与节点的兴趣点

	order      map[string]int // 节点在 NodeList 中的位置, 用于打破平局
	calibrator *Calibrator
}

// NewGraph 由图文件和人工整理的 POI 目录构建图.
// 结构错误 (缺少 meta, 节点重复, 边端点不存在, 自环, 重复边) 直接返回错误;
// 无法解析的 POI 只会保持未解析状态, 不影响其他数据.
func NewGraph(data *model.GraphFile, directory []model.POI, cal Calibration) (*Graph, error) {
	if data == nil || data.Meta == nil {
		return nil, ErrMissingMeta
	}

	g := &Graph{
		Meta:     *data.Meta,
		Nodes:    make(map[string]*model.Node, len(data.Nodes)),
		NodeList: make([]model.Node, 0, len(data.Nodes)),
		Edges:    make([]model.Edge, 0, len(data.Edges)),
		AdjList:  make(map[string][]Neighbor, len(data.Nodes)),
		order:    make(map[string]int, len(data.Nodes)),
	}
	g.calibrator = NewCalibrator(cal, g.Meta.Width, g.Meta.Height)

	// 加载节点
	for _, n := range data.Nodes {
		if _, exists := g.order[n.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		if n.Level == 0 {
			n.Level = model.DefaultLevel
		}
		g.order[n.ID] = len(g.NodeList)
		g.NodeList = append(g.NodeList, n)
	}
	for i := range g.NodeList {
		node := &g.NodeList[i]
		g.Nodes[node.ID] = node
	}

	// 加载边, 同时生成双向邻接
	seen := make(map[[2]string]bool, len(data.Edges))
	for i, e := range data.Edges {
		from, to := g.Nodes[e.From], g.Nodes[e.To]
		if from == nil || to == nil {
			return nil, fmt.Errorf("%w: 第 %d 条边 %s-%s", ErrUnknownNode, i, e.From, e.To)
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: %s", ErrSelfEdge, e.From)
		}
		key := pairKey(e.From, e.To)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s-%s", ErrDuplicateEdge, e.From, e.To)
		}
		seen[key] = true

		meters := g.calibrator.EdgeMeters(e, *from, *to)
		accessible := e.IsAccessible()
		g.Edges = append(g.Edges, e)
		g.AdjList[e.From] = append(g.AdjList[e.From], Neighbor{To: e.To, Meters: meters, Accessible: accessible})
		g.AdjList[e.To] = append(g.AdjList[e.To], Neighbor{To: e.From, Meters: meters, Accessible: accessible})
	}

	// 解析 POI
	g.POIs = ResolvePOIs(directory, g.Meta.Width, g.Meta.Height, g.NodeList)
	unresolved := 0
	for _, p := range g.POIs {
		if !p.Resolved() {
			unresolved++
			slog.Warn("POI 未能定位到节点", slog.String("poi", p.ID), slog.String("grid", p.GridRef))
		}
	}

	slog.Info("图构建完成",
		slog.Int("nodes", len(g.NodeList)),
		slog.Int("edges", len(g.Edges)),
		slog.Int("pois", len(g.POIs)),
		slog.Int("unresolved_pois", unresolved),
		slog.Float64("meters_per_pixel", g.calibrator.MetersPerPixel()),
	)
	return g, nil
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// HasNode 节点是否存在
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// Calibrator 图使用的距离换算器
func (g *Graph) Calibrator() *Calibrator {
	return g.calibrator
}

// GetNeighbors 获取节点的邻居, accessibleOnly 时跳过明确标记为不可无障碍通行的边
func (g *Graph) GetNeighbors(nodeID string, accessibleOnly bool) []Neighbor {
	if !accessibleOnly {
		return g.AdjList[nodeID]
	}
	var valid []Neighbor
	for _, nb := range g.AdjList[nodeID] {
		if nb.Accessible {
			valid = append(valid, nb)
		}
	}
	return valid
}

// FindNearestNode 找到离给定像素坐标最近的节点
func (g *Graph) FindNearestNode(x, y float64) *model.Node {
	id, ok := SnapToNearestNode(g.NodeList, x, y)
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// POIByID 根据 ID 查找兴趣点
func (g *Graph) POIByID(id string) *model.POI {
	for i := range g.POIs {
		if g.POIs[i].ID == id {
			return &g.POIs[i]
		}
	}
	return nil
}

// File 导出为图文件结构 (包含已解析的 POI)
func (g *Graph) File() *model.GraphFile {
	meta := g.Meta
	return &model.GraphFile{
		Meta:  &meta,
		Nodes: append([]model.Node{}, g.NodeList...),
		Edges: append([]model.Edge{}, g.Edges...),
		POIs:  append([]model.POI{}, g.POIs...),
	}
}

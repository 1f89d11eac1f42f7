package algo

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"path-system/model"
	"path-system/utils"
)

// GridRef 解析后的网格引用, Col 从 0 开始 ('A' = 0), Row 从 1 开始
type GridRef struct {
	Col int
	Row int
}

// ParseGridRef 解析 "F6" 形式的网格引用 (列字母 + 行号).
// 列超出 GridCols 或行不在 1..GridRows 内都视为无效.
func ParseGridRef(ref string) (GridRef, bool) {
	ref = strings.TrimSpace(ref)
	if len(ref) < 2 {
		return GridRef{}, false
	}
	letter := unicode.ToUpper(rune(ref[0]))
	if letter < 'A' || letter > 'Z' {
		return GridRef{}, false
	}
	if ref[1] < '0' || ref[1] > '9' {
		return GridRef{}, false
	}
	row, err := strconv.Atoi(ref[1:])
	if err != nil {
		return GridRef{}, false
	}
	col := int(letter - 'A')
	if col >= GridCols || row < 1 || row > GridRows {
		return GridRef{}, false
	}
	return GridRef{Col: col, Row: row}, true
}

// Center 网格单元中心的像素坐标
func (r GridRef) Center(width, height int) (x, y float64) {
	x = (float64(r.Col) + 0.5) / GridCols * float64(width)
	y = (float64(r.Row) - 0.5) / GridRows * float64(height)
	return x, y
}

// GridToXY 网格引用直接换算为像素坐标
func GridToXY(ref string, width, height int) (x, y float64, ok bool) {
	r, ok := ParseGridRef(ref)
	if !ok {
		return 0, 0, false
	}
	x, y = r.Center(width, height)
	return x, y, true
}

// SnapToNearestNode 按平方距离找最近的节点, 距离相同时取列表中靠前的节点
func SnapToNearestNode(nodes []model.Node, x, y float64) (string, bool) {
	if len(nodes) == 0 {
		return "", false
	}
	bestID := ""
	bestD2 := math.Inf(1)
	for _, n := range nodes {
		if d2 := utils.SquaredDistance(n, x, y); d2 < bestD2 {
			bestD2 = d2
			bestID = n.ID
		}
	}
	return bestID, bestID != ""
}

// ResolvePOIs 为每个带网格引用的 POI 推导坐标并吸附到最近节点.
// 返回新的切片, 不修改传入的目录.
func ResolvePOIs(directory []model.POI, width, height int, nodes []model.Node) []model.POI {
	pois := make([]model.POI, len(directory))
	for i, raw := range directory {
		poi := raw
		poi.X, poi.Y, poi.NodeID = nil, nil, ""
		pois[i] = poi

		if poi.GridRef == "" {
			continue
		}
		x, y, ok := GridToXY(poi.GridRef, width, height)
		if !ok {
			continue
		}
		pois[i].X = model.Float64(x)
		pois[i].Y = model.Float64(y)
		if id, ok := SnapToNearestNode(nodes, x, y); ok {
			pois[i].NodeID = id
		}
	}
	return pois
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindPOI 名称匹配 (忽略大小写与首尾空白):
// 先精确匹配, 再找名称包含查询词的第一个 POI, 最后找名称被查询词包含的第一个 POI
func FindPOI(pois []model.POI, name string) *model.POI {
	query := normalize(name)
	if query == "" {
		return nil
	}
	for i := range pois {
		if normalize(pois[i].Name) == query {
			return &pois[i]
		}
	}
	for i := range pois {
		if strings.Contains(normalize(pois[i].Name), query) {
			return &pois[i]
		}
	}
	for i := range pois {
		if n := normalize(pois[i].Name); n != "" && strings.Contains(query, n) {
			return &pois[i]
		}
	}
	return nil
}

// FindPOIByName 在图的 POI 中按名称查找, 找不到返回 nil
func (g *Graph) FindPOIByName(name string) *model.POI {
	return FindPOI(g.POIs, name)
}

// SearchPOIs 返回名称或关键词包含查询词的全部 POI (按目录顺序)
func (g *Graph) SearchPOIs(q string) []model.POI {
	query := normalize(q)
	results := make([]model.POI, 0)
	if query == "" {
		return results
	}
	for _, p := range g.POIs {
		if strings.Contains(normalize(p.Name), query) || matchKeyword(p.Keywords, query) {
			results = append(results, p)
		}
	}
	return results
}

func matchKeyword(keywords []string, query string) bool {
	for _, k := range keywords {
		if strings.Contains(normalize(k), query) {
			return true
		}
	}
	return false
}

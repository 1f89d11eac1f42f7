package algo

import (
	"testing"

	"path-system/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGridRef(t *testing.T) {
	tests := []struct {
		ref  string
		want GridRef
		ok   bool
	}{
		{"F6", GridRef{Col: 5, Row: 6}, true},
		{"a1", GridRef{Col: 0, Row: 1}, true},
		{" C10 ", GridRef{Col: 2, Row: 10}, true},
		{"G12", GridRef{Col: 6, Row: 12}, true},
		{"", GridRef{}, false},
		{"F", GridRef{}, false},
		{"6F", GridRef{}, false},
		{"Fx", GridRef{}, false},
		{"F+6", GridRef{}, false}, // 行号只能是数字
		{"F-6", GridRef{}, false},
		{"H1", GridRef{}, false},  // 超出 7 列
		{"A0", GridRef{}, false},  // 行从 1 开始
		{"A13", GridRef{}, false}, // 超出 12 行
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, ok := ParseGridRef(tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGridToXY(t *testing.T) {
	x, y, ok := GridToXY("F6", 1064, 1786)
	require.True(t, ok)
	assert.InDelta(t, 1064*5.5/7, x, 1e-9)
	assert.InDelta(t, 1786*5.5/12, y, 1e-9)
	assert.InDelta(t, 836, x, 0.5)
	assert.InDelta(t, 818, y, 1)

	_, _, ok = GridToXY("??", 1064, 1786)
	assert.False(t, ok)
}

func TestSnapToNearestNode(t *testing.T) {
	nodes := []model.Node{{ID: "a", X: 0, Y: 0}, {ID: "b", X: 10, Y: 0}, {ID: "c", X: 10, Y: 0}}

	id, ok := SnapToNearestNode(nodes, 2, 1)
	require.True(t, ok)
	assert.Equal(t, "a", id)

	// b 与 c 重合, 取靠前的 b
	id, ok = SnapToNearestNode(nodes, 9, 0)
	require.True(t, ok)
	assert.Equal(t, "b", id)

	// 与 a/b 等距时取 a
	id, _ = SnapToNearestNode(nodes, 5, 0)
	assert.Equal(t, "a", id)

	_, ok = SnapToNearestNode(nil, 0, 0)
	assert.False(t, ok)
}

func TestResolvePOIs(t *testing.T) {
	nodes := []model.Node{{ID: "n0", X: 800, Y: 800}, {ID: "n1", X: 100, Y: 100}}
	directory := []model.POI{
		{ID: "scotia", Name: "Scotia Plaza", GridRef: "F6"},
		{ID: "nogrid", Name: "Nowhere"},
		{ID: "bad", Name: "Broken", GridRef: "Z99"},
	}

	pois := ResolvePOIs(directory, 1064, 1786, nodes)
	require.Len(t, pois, 3)

	require.NotNil(t, pois[0].X)
	assert.InDelta(t, 836, *pois[0].X, 0.5)
	assert.Equal(t, "n0", pois[0].NodeID)
	assert.True(t, pois[0].Resolved())

	assert.Nil(t, pois[1].X)
	assert.False(t, pois[1].Resolved())
	assert.Nil(t, pois[2].X)
	assert.Empty(t, pois[2].NodeID)

	// 目录本身不被修改
	assert.Nil(t, directory[0].X)

	// 空节点列表: 坐标可以算出, 但没有节点
	pois = ResolvePOIs(directory, 1064, 1786, nil)
	assert.NotNil(t, pois[0].X)
	assert.Empty(t, pois[0].NodeID)
}

func TestFindPOI(t *testing.T) {
	pois := []model.POI{
		{ID: "union-station-bus-terminal", Name: "Union Station Bus Terminal"},
		{ID: "union-station", Name: "Union Station"},
		{ID: "eaton", Name: "CF Toronto Eaton Centre"},
		{ID: "fcp", Name: "First Canadian Place"},
	}

	tests := []struct {
		query string
		want  string
	}{
		{"union station", "union-station"},
		{"  UNION STATION ", "union-station"},
		{"eaton", "eaton"},
		{"Union", "union-station-bus-terminal"},
		{"meet me at first canadian place food court", "fcp"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := FindPOI(pois, tt.query)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ID)
		})
	}

	assert.Nil(t, FindPOI(pois, "scarborough"))
	assert.Nil(t, FindPOI(pois, "   "))
	assert.Nil(t, FindPOI(nil, "union"))
}

func TestGraph_FindAndSearchPOIs(t *testing.T) {
	data := &model.GraphFile{
		Meta:  &model.Meta{Width: 1064, Height: 1786},
		Nodes: []model.Node{{ID: "n0", X: 836, Y: 818}},
		Edges: []model.Edge{},
	}
	directory := []model.POI{
		{ID: "scotia-plaza", Name: "Scotia Plaza", GridRef: "F6", Keywords: []string{"bank"}},
		{ID: "royal-bank-building", Name: "Royal Bank Building", GridRef: "F6"},
	}
	g, err := NewGraph(data, directory, DefaultCalibration())
	require.NoError(t, err)

	p := g.FindPOIByName("scotia plaza")
	require.NotNil(t, p)
	assert.Equal(t, "n0", p.NodeID)

	assert.Equal(t, "royal-bank-building", g.POIByID("royal-bank-building").ID)
	assert.Nil(t, g.POIByID("nope"))

	results := g.SearchPOIs("bank")
	require.Len(t, results, 2)
	assert.Equal(t, "scotia-plaza", results[0].ID)
	assert.Empty(t, g.SearchPOIs(""))
}

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"path-system/algo"
	"path-system/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *model.GraphFile {
	return &model.GraphFile{
		Meta: &model.Meta{Width: 20, Height: 10},
		Nodes: []model.Node{
			{ID: "n0", X: 0, Y: 4, Level: 1},
			{ID: "n1", X: 4, Y: 4, Level: 1},
			{ID: "n2", X: 8.5, Y: 4.25, Level: 1},
		},
		Edges: []model.Edge{
			{From: "n0", To: "n1", Pixels: model.Float64(4), Accessible: model.Bool(true)},
			{From: "n1", To: "n2", Meters: model.Float64(3.3)},
		},
	}
}

func TestWriteReadGraph_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "path.graph.json")
	in := sampleGraph()
	require.NoError(t, WriteGraph(path, in))

	out, err := ReadGraph(path)
	require.NoError(t, err)

	assert.Equal(t, *in.Meta, *out.Meta)
	require.Len(t, out.Nodes, len(in.Nodes))
	require.Len(t, out.Edges, len(in.Edges))
	for i := range in.Nodes {
		assert.Equal(t, in.Nodes[i].ID, out.Nodes[i].ID)
		assert.InDelta(t, in.Nodes[i].X, out.Nodes[i].X, 1e-9)
		assert.InDelta(t, in.Nodes[i].Y, out.Nodes[i].Y, 1e-9)
	}
	assert.InDelta(t, 4.0, *out.Edges[0].Pixels, 1e-9)
	assert.True(t, *out.Edges[0].Accessible)
	assert.Nil(t, out.Edges[1].Accessible)
	assert.NotNil(t, out.POIs)
	assert.Empty(t, out.POIs)

	// 目录中不应残留临时文件
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteGraph_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	err := WriteGraph(path, &model.GraphFile{Nodes: []model.Node{}, Edges: []model.Edge{}})
	assert.ErrorIs(t, err, ErrInvalidGraph)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDecodeGraph_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		hint string
	}{
		{"not json", `{"meta":`, "JSON"},
		{"missing meta", `{"nodes":[],"edges":[]}`, "Meta"},
		{"zero width", `{"meta":{"width":0,"height":5},"nodes":[],"edges":[]}`, "Width"},
		{"missing nodes", `{"meta":{"width":5,"height":5},"edges":[]}`, "Nodes"},
		{"node without id", `{"meta":{"width":5,"height":5},"nodes":[{"x":1,"y":1}],"edges":[]}`, "ID"},
		{"edge without to", `{"meta":{"width":5,"height":5},"nodes":[],"edges":[{"from":"a"}]}`, "To"},
		{"negative meters", `{"meta":{"width":5,"height":5},"nodes":[],"edges":[{"from":"a","to":"b","meters":-1}]}`, "Meters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGraph(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGraph)
			assert.Contains(t, err.Error(), tt.hint)
		})
	}
}

func TestDecodePOIDirectory(t *testing.T) {
	body := `
- id: union-station
  name: Union Station
  grid: E9
  category: U
  keywords: [go transit, train]
- id: cf-toronto-eaton-centre
  name: CF Toronto Eaton Centre
  grid: F4
`
	pois, err := DecodePOIDirectory(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, pois, 2)
	assert.Equal(t, "E9", pois[0].GridRef)
	assert.Equal(t, []string{"go transit", "train"}, []string(pois[0].Keywords))
	assert.Empty(t, pois[1].Category)

	// JSON 同样可以解析
	pois, err = DecodePOIDirectory(strings.NewReader(`[{"id":"a","name":"A","grid":"A1"}]`))
	require.NoError(t, err)
	assert.Equal(t, "A1", pois[0].GridRef)

	pois, err = DecodePOIDirectory(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, pois)

	_, err = DecodePOIDirectory(strings.NewReader("- id: a\n"))
	assert.ErrorIs(t, err, ErrInvalidDirectory)

	_, err = DecodePOIDirectory(strings.NewReader("- {id: a, name: A}\n- {id: a, name: B}\n"))
	assert.ErrorIs(t, err, ErrInvalidDirectory)
}

func TestBundledPOIDirectory(t *testing.T) {
	pois, err := ReadPOIDirectory(filepath.Join("..", "data", "pois.yaml"))
	require.NoError(t, err)
	assert.Len(t, pois, 91)
	for _, p := range pois {
		_, ok := algo.ParseGridRef(p.GridRef)
		assert.True(t, ok, "%s has grid %q", p.ID, p.GridRef)
	}
}

type countingSource struct {
	calls int
	data  *model.GraphFile
	pois  []model.POI
}

func (s *countingSource) LoadGraphFile() (*model.GraphFile, error) {
	s.calls++
	return s.data, nil
}

func (s *countingSource) LoadPOIs() ([]model.POI, error) {
	return s.pois, nil
}

func TestLoader_Memoizes(t *testing.T) {
	src := &countingSource{
		data: sampleGraph(),
		pois: []model.POI{{ID: "p", Name: "Somewhere", GridRef: "A1"}},
	}
	l := NewLoader(src, algo.DefaultCalibration())

	g1, err := l.Graph()
	require.NoError(t, err)
	g2, err := l.Graph()
	require.NoError(t, err)

	assert.Same(t, g1, g2)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "n0", g1.POIs[0].NodeID)
}

func TestLoader_FileSource(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "g.json")
	require.NoError(t, WriteGraph(graphPath, sampleGraph()))

	l := NewLoader(FileSource{GraphPath: graphPath, POIPath: filepath.Join("..", "data", "pois.yaml")}, algo.DefaultCalibration())
	g, err := l.Graph()
	require.NoError(t, err)
	assert.Len(t, g.NodeList, 3)
	assert.Len(t, g.POIs, 91)
	assert.NotNil(t, g.FindPOIByName("union station"))

	_, err = NewLoader(FileSource{GraphPath: filepath.Join(dir, "missing.json")}, algo.DefaultCalibration()).Graph()
	assert.Error(t, err)
}

package extract

import (
	"fmt"
	"image"
	"io"
	"log/slog"

	"path-system/model"
)

// Params 离线流程的全部参数
type Params struct {
	Thresholds
	SampleParams
	Radius float64 `json:"radius" yaml:"radius"` // 连接半径 (像素)
}

// DefaultParams step=4 hmin=80 hmax=160 smin=20 vmin=40 window=1 minhits=1 radius=14
func DefaultParams() Params {
	return Params{
		Thresholds:   DefaultThresholds(),
		SampleParams: DefaultSampleParams(),
		Radius:       14,
	}
}

// Validate 检查参数组合
func (p Params) Validate() error {
	if p.HueMin > p.HueMax {
		return ErrBadHueRange
	}
	if p.Radius <= 0 {
		return ErrBadRadius
	}
	return p.SampleParams.Validate()
}

// Summary 构建结果摘要
type Summary struct {
	Nodes  int `json:"nodes"`
	Edges  int `json:"edges"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s Summary) String() string {
	return fmt.Sprintf("生成 %d 个节点, %d 条边. 地图尺寸: %dx%d", s.Nodes, s.Edges, s.Width, s.Height)
}

// SummaryOf 统计图文件
func SummaryOf(g *model.GraphFile) Summary {
	s := Summary{Nodes: len(g.Nodes), Edges: len(g.Edges)}
	if g.Meta != nil {
		s.Width, s.Height = g.Meta.Width, g.Meta.Height
	}
	return s
}

// Build 从栅格数据流构建图文件, 解码失败时不返回任何部分结果
func Build(r io.Reader, p Params) (*model.GraphFile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return BuildImage(img, p)
}

// CheckDimensions 只读取文件头, 像素总数超过 maxPixels 时返回 ErrTooLarge.
// maxPixels <= 0 表示不限制.
func CheckDimensions(r io.Reader, maxPixels int) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return cfg.Width, cfg.Height, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}

// BuildImage 从已解码的图片构建图文件
func BuildImage(img image.Image, p Params) (*model.GraphFile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mask := SegmentImage(img, p.Thresholds)
	nodes, err := Sample(mask, p.SampleParams)
	if err != nil {
		return nil, err
	}
	edges, err := BuildEdges(nodes, p.Radius)
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []model.Node{}
	}
	if edges == nil {
		edges = []model.Edge{}
	}

	slog.Debug("graph extracted",
		slog.Int("walkable_pixels", mask.Count()),
		slog.Int("nodes", len(nodes)),
		slog.Int("edges", len(edges)),
	)

	return &model.GraphFile{
		Meta:  &model.Meta{Width: mask.Width, Height: mask.Height},
		Nodes: nodes,
		Edges: edges,
		POIs:  []model.POI{},
	}, nil
}

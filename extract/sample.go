package extract

import (
	"fmt"

	"path-system/model"
)

// SampleParams 网格采样参数
type SampleParams struct {
	Step    int `json:"step" yaml:"step"`         // 采样步长 (像素)
	Window  int `json:"window" yaml:"window"`     // 邻域半径 W, 窗口为 (2W+1)x(2W+1)
	MinHits int `json:"min_hits" yaml:"min_hits"` // 窗口内最少可通行像素数
}

// DefaultSampleParams 默认: step=4, window=1, minHits=1
func DefaultSampleParams() SampleParams {
	return SampleParams{Step: 4, Window: 1, MinHits: 1}
}

// Validate 检查采样参数
func (p SampleParams) Validate() error {
	if p.Step <= 0 {
		return ErrBadStep
	}
	if p.Window < 0 {
		return ErrBadWindow
	}
	return nil
}

// Sample 按行优先顺序 (y 外层, x 内层) 每隔 Step 采样一次,
// 邻域内命中数 >= MinHits 时生成节点, 用于抑制孤立噪点
func Sample(mask *Mask, p SampleParams) ([]model.Node, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var nodes []model.Node
	for y := 0; y < mask.Height; y += p.Step {
		for x := 0; x < mask.Width; x += p.Step {
			if countHits(mask, x, y, p.Window) < p.MinHits {
				continue
			}
			nodes = append(nodes, model.Node{
				ID:    fmt.Sprintf("n%d", len(nodes)),
				X:     float64(x),
				Y:     float64(y),
				Level: model.DefaultLevel,
			})
		}
	}
	return nodes, nil
}

func countHits(mask *Mask, x, y, window int) int {
	hits := 0
	for dy := -window; dy <= window; dy++ {
		for dx := -window; dx <= window; dx++ {
			if mask.At(x+dx, y+dy) {
				hits++
			}
		}
	}
	return hits
}

package extract

import (
	"fmt"
	"image"
	"image/color"
	"io"

	// 注册额外的解码器
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Thresholds 可通行像素的颜色阈值
// 色相使用半刻度 (0-180), 饱和度与明度使用 0-255 刻度
type Thresholds struct {
	HueMin        float64 `json:"hue_min" yaml:"hue_min"`
	HueMax        float64 `json:"hue_max" yaml:"hue_max"`
	SaturationMin float64 `json:"saturation_min" yaml:"saturation_min"`
	ValueMin      float64 `json:"value_min" yaml:"value_min"`
}

// DefaultThresholds PATH 地图上通道的标注颜色
func DefaultThresholds() Thresholds {
	return Thresholds{HueMin: 80, HueMax: 160, SaturationMin: 20, ValueMin: 40}
}

// Match 判断一个颜色是否落在阈值内
func (t Thresholds) Match(c HSV) bool {
	h, s, v := c.Scaled()
	return h >= t.HueMin && h <= t.HueMax && s >= t.SaturationMin && v >= t.ValueMin
}

// Mask 可通行掩码, 行优先存储
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask 创建一个全部不可通行的掩码
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At 越界的坐标视为不可通行
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set 标记一个像素
func (m *Mask) Set(x, y int, walkable bool) {
	m.bits[y*m.Width+x] = walkable
}

// Count 可通行像素总数
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Segment 解码栅格并生成可通行掩码
func Segment(r io.Reader, t Thresholds) (*Mask, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return SegmentImage(img, t), nil
}

// SegmentImage 对已解码的图片逐像素分类
func SegmentImage(img image.Image, t Thresholds) *Mask {
	b := img.Bounds()
	mask := NewMask(b.Dx(), b.Dy())
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if t.Match(RGBToHSV(c.R, c.G, c.B)) {
				mask.Set(x, y, true)
			}
		}
	}
	return mask
}

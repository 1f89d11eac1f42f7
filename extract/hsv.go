package extract

import "math"

// HSV 颜色, H 为 0-360 度, S/V 为 0-1
type HSV struct {
	H, S, V float64
}

// RGBToHSV 标准 RGB -> HSV 转换 (r/g/b 取值 0-255)
func RGBToHSV(r, g, b uint8) HSV {
	rf := float64(r) / 255
	gf := float64(g) / 255
	bf := float64(b) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	d := max - min

	h := 0.0
	if d != 0 {
		switch max {
		case rf:
			h = math.Mod((gf-bf)/d, 6)
		case gf:
			h = (bf-rf)/d + 2
		default:
			h = (rf-gf)/d + 4
		}
		h *= 60
		if h < 0 {
			h += 360
		}
	}

	s := 0.0
	if max != 0 {
		s = d / max
	}
	return HSV{H: h, S: s, V: max}
}

// Scaled 返回分类使用的刻度: 色相 0-180, 饱和度与明度 0-255
func (c HSV) Scaled() (h, s, v float64) {
	return c.H / 2, c.S * 255, c.V * 255
}

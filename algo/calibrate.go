package algo

import (
	"math"

	"path-system/model"
	"path-system/utils"
)

// 地图被划分为 GridCols 列 x GridRows 行的粗略网格 (与 POI 的网格引用一致)
const (
	GridCols = 7
	GridRows = 12
)

// 未提供尺寸时使用的地图默认尺寸 (像素)
const (
	DefaultMapWidth  = 1064
	DefaultMapHeight = 1786
)

// Calibration 距离换算参数
type Calibration struct {
	// MetersPerPixel 显式指定的比例尺, <= 0 或 NaN 表示按网格推算
	MetersPerPixel float64 `yaml:"meters_per_pixel"`
	// MetersPerGridCol/Row 每个网格单元对应的真实宽度与高度 (米)
	MetersPerGridCol float64 `yaml:"meters_per_grid_col"`
	MetersPerGridRow float64 `yaml:"meters_per_grid_row"`
	// WalkingSpeed 步行速度 (米/分钟)
	WalkingSpeed float64 `yaml:"walking_speed_m_per_min"`
	// StepLength 步长 (米)
	StepLength float64 `yaml:"step_length_m"`
}

// DefaultCalibration 默认: 每格 100 米, 75 米/分钟, 步长 0.78 米
func DefaultCalibration() Calibration {
	return Calibration{
		MetersPerPixel:   math.NaN(),
		MetersPerGridCol: 100,
		MetersPerGridRow: 100,
		WalkingSpeed:     75,
		StepLength:       0.78,
	}
}

// Calibrator 针对某张地图换算距离与时间
type Calibrator struct {
	cal            Calibration
	metersPerPixel float64
}

// NewCalibrator 根据地图尺寸推导比例尺.
// 未设置覆盖值时, 假设地图覆盖 GridCols x GridRows 个网格, 取水平与垂直比例的平均值.
func NewCalibrator(cal Calibration, width, height int) *Calibrator {
	def := DefaultCalibration()
	if cal.MetersPerGridCol <= 0 {
		cal.MetersPerGridCol = def.MetersPerGridCol
	}
	if cal.MetersPerGridRow <= 0 {
		cal.MetersPerGridRow = def.MetersPerGridRow
	}
	if cal.WalkingSpeed <= 0 {
		cal.WalkingSpeed = def.WalkingSpeed
	}
	if cal.StepLength <= 0 {
		cal.StepLength = def.StepLength
	}
	if width <= 0 {
		width = DefaultMapWidth
	}
	if height <= 0 {
		height = DefaultMapHeight
	}

	mpp := cal.MetersPerPixel
	if math.IsNaN(mpp) || math.IsInf(mpp, 0) || mpp <= 0 {
		scaleX := GridCols * cal.MetersPerGridCol / float64(width)
		scaleY := GridRows * cal.MetersPerGridRow / float64(height)
		mpp = (scaleX + scaleY) / 2
	}
	return &Calibrator{cal: cal, metersPerPixel: mpp}
}

// MetersPerPixel 实际使用的比例尺
func (c *Calibrator) MetersPerPixel() float64 {
	return c.metersPerPixel
}

// ToMeters 像素距离换算为米
func (c *Calibrator) ToMeters(pixels float64) float64 {
	return pixels * c.metersPerPixel
}

// EdgeMeters 边的真实长度: 优先使用人工标注的米数, 否则按像素长度换算
func (c *Calibrator) EdgeMeters(e model.Edge, from, to model.Node) float64 {
	if e.Meters != nil {
		return *e.Meters
	}
	if e.Pixels != nil {
		return c.ToMeters(*e.Pixels)
	}
	return c.ToMeters(utils.PixelDistance(from, to))
}

// Stats 总长度 (米) 换算为分钟与步数, 长度大于 0 时至少为 1
func (c *Calibrator) Stats(meters float64) model.RouteStats {
	stats := model.RouteStats{Meters: meters}
	if meters > 0 {
		stats.Minutes = max(1, int(math.Round(meters/c.cal.WalkingSpeed)))
		stats.Steps = max(1, int(math.Round(meters/c.cal.StepLength)))
	}
	return stats
}

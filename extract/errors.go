package extract

import "errors"

var (
	// ErrDecode 输入无法解码为图片
	ErrDecode = errors.New("extract: 无法解码地图栅格")
	// ErrBadStep 采样步长必须为正数
	ErrBadStep = errors.New("extract: 采样步长必须大于 0")
	// ErrBadWindow 邻域半径不能为负
	ErrBadWindow = errors.New("extract: 邻域半径不能为负数")
	// ErrBadRadius 连接半径必须为正数
	ErrBadRadius = errors.New("extract: 连接半径必须大于 0")
	// ErrBadHueRange 色相下限大于上限
	ErrBadHueRange = errors.New("extract: 色相范围无效")
	// ErrTooLarge 栅格像素数超过上限
	ErrTooLarge = errors.New("extract: 地图栅格尺寸超出上限")
)

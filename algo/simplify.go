package algo

import (
	"math"

	"path-system/model"
	"path-system/utils"
)

// SmoothRouteTolerance 叉积绝对值不超过该值时视为共线 (像素单位)
const SmoothRouteTolerance = 0.01

// SmoothRoute 删除路径中共线的中间点, 始终保留首尾节点
func SmoothRoute(points []model.Node) []model.Node {
	return SmoothRouteWithTolerance(points, SmoothRouteTolerance)
}

// SmoothRouteWithTolerance 同 SmoothRoute, 可指定共线容差
func SmoothRouteWithTolerance(points []model.Node, tolerance float64) []model.Node {
	if len(points) < 3 {
		return points
	}

	smoothed := []model.Node{points[0]}
	for i := 1; i < len(points)-1; i++ {
		cross := utils.Cross(points[i-1], points[i], points[i+1])
		if math.Abs(cross) > tolerance {
			smoothed = append(smoothed, points[i])
		}
	}
	return append(smoothed, points[len(points)-1])
}

package utils

import (
	"path-system/model"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ToPoint 将节点转换为平面坐标点 (像素)
func ToPoint(n model.Node) orb.Point {
	return orb.Point{n.X, n.Y}
}

// PixelDistance 两个节点之间的欧氏距离 (像素)
func PixelDistance(a, b model.Node) float64 {
	return planar.Distance(ToPoint(a), ToPoint(b))
}

// SquaredDistance 点到节点的距离平方, 用于最近节点比较 (避免开方)
func SquaredDistance(n model.Node, x, y float64) float64 {
	return planar.DistanceSquared(ToPoint(n), orb.Point{x, y})
}

// PolylineLength 节点序列的折线总长度 (像素)
func PolylineLength(nodes []model.Node) float64 {
	if len(nodes) < 2 {
		return 0
	}
	ls := make(orb.LineString, 0, len(nodes))
	for _, n := range nodes {
		ls = append(ls, ToPoint(n))
	}
	return planar.Length(ls)
}

// Cross 向量 (a->b) 与 (b->c) 的叉积
func Cross(a, b, c model.Node) float64 {
	dx1 := b.X - a.X
	dy1 := b.Y - a.Y
	dx2 := c.X - b.X
	dy2 := c.Y - b.Y
	return dx1*dy2 - dy1*dx2
}

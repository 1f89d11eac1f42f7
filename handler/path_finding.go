package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"path-system/algo"
	"path-system/model"
	"path-system/utils"

	"github.com/gin-gonic/gin"
)

// PathRequest 路径规划请求, 起终点可以是地点名称或节点 ID (节点 ID 优先)
type PathRequest struct {
	From           string `json:"from"`            // 起点名称
	To             string `json:"to"`              // 终点名称
	StartID        string `json:"start_id"`        // 起点节点 ID
	EndID          string `json:"end_id"`          // 终点节点 ID
	AccessibleOnly bool   `json:"accessible_only"` // 只走无障碍通道
	Smooth         bool   `json:"smooth"`          // 是否简化路线 (去掉共线点)
}

// Endpoint 解析后的起点或终点
type Endpoint struct {
	NodeID string     `json:"node_id"`
	POI    *model.POI `json:"poi,omitempty"`
}

// PathResponse 路径规划响应
type PathResponse struct {
	Found       bool             `json:"found"`
	From        *Endpoint        `json:"from,omitempty"`
	To          *Endpoint        `json:"to,omitempty"`
	Points      []model.Node     `json:"points,omitempty"`
	Stats       model.RouteStats `json:"stats"`
	PixelLength float64          `json:"pixel_length,omitempty"` // 绘制路线的像素长度
	Message     string           `json:"message,omitempty"`
}

// resolveEndpoint 把节点 ID 或地点名称解析为图上的节点
func resolveEndpoint(g *algo.Graph, nodeID, name string) (*Endpoint, error) {
	if nodeID != "" {
		if !g.HasNode(nodeID) {
			return nil, fmt.Errorf("节点不存在: %s", nodeID)
		}
		return &Endpoint{NodeID: nodeID}, nil
	}
	if name == "" {
		return nil, fmt.Errorf("起点或终点未指定")
	}
	poi := g.FindPOIByName(name)
	if poi == nil {
		return nil, fmt.Errorf("未找到地点: %s", name)
	}
	if !poi.Resolved() {
		return nil, fmt.Errorf("地点无法定位到地图上: %s", poi.Name)
	}
	return &Endpoint{NodeID: poi.NodeID, POI: poi}, nil
}

// FindPath 路径规划接口
func (h *Handler) FindPath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "请求参数错误: "+err.Error())
		return
	}
	g, ok := h.graph(c)
	if !ok {
		return
	}

	// 先解析地点, 再寻路: 地点不存在与无路可走是两种不同的结果
	from, err := resolveEndpoint(g, req.StartID, req.From)
	if err != nil {
		abortWithError(c, http.StatusNotFound, CodeLocationNotFound, err.Error())
		return
	}
	to, err := resolveEndpoint(g, req.EndID, req.To)
	if err != nil {
		abortWithError(c, http.StatusNotFound, CodeLocationNotFound, err.Error())
		return
	}

	result := g.Dijkstra(from.NodeID, to.NodeID, algo.PathOptions{AccessibleOnly: req.AccessibleOnly})
	if h.Metrics != nil {
		h.Metrics.ObserveRoute(result)
	}
	if !result.Found {
		c.JSON(http.StatusOK, PathResponse{
			Found:   false,
			From:    from,
			To:      to,
			Message: "未找到符合条件的路径",
		})
		return
	}

	if slog.Default().Enabled(c, slog.LevelDebug) {
		slog.Debug("route found", slog.String("route", g.FormatPath(result)))
	}

	points := result.Points
	if req.Smooth {
		points = algo.SmoothRoute(points)
	}

	c.JSON(http.StatusOK, PathResponse{
		Found:       true,
		From:        from,
		To:          to,
		Points:      points,
		Stats:       result.Stats,
		PixelLength: utils.PolylineLength(points),
		Message:     "路径规划成功",
	})
}

// GetGraph 导出当前加载的图 (含已解析的 POI), 供地图叠加层绘制
func (h *Handler) GetGraph(c *gin.Context) {
	g, ok := h.graph(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g.File())
}

// GetNodes 获取所有节点信息
func (h *Handler) GetNodes(c *gin.Context) {
	g, ok := h.graph(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(g.NodeList),
		"meta":  g.Meta,
		"nodes": g.NodeList,
	})
}

// GetNodeByID 根据 ID 获取节点信息
func (h *Handler) GetNodeByID(c *gin.Context) {
	g, ok := h.graph(c)
	if !ok {
		return
	}
	node := g.Nodes[c.Param("id")]
	if node == nil {
		abortWithError(c, http.StatusNotFound, CodeNotFound, "节点不存在")
		return
	}
	c.JSON(http.StatusOK, node)
}

// NearestNode 查找距离给定像素坐标最近的节点
func (h *Handler) NearestNode(c *gin.Context) {
	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "x 和 y 必须是数字")
		return
	}
	g, ok := h.graph(c)
	if !ok {
		return
	}
	node := g.FindNearestNode(x, y)
	if node == nil {
		abortWithError(c, http.StatusNotFound, CodeNotFound, "地图中没有节点")
		return
	}
	c.JSON(http.StatusOK, node)
}

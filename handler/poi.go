package handler

import (
	"net/http"
	"strings"

	"path-system/model"

	"github.com/gin-gonic/gin"
)

// GetPOIs 获取全部兴趣点 (含解析后的坐标与节点)
func (h *Handler) GetPOIs(c *gin.Context) {
	g, ok := h.graph(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(g.POIs),
		"pois":  g.POIs,
	})
}

// SearchPOIs 按名称或关键词搜索兴趣点
func (h *Handler) SearchPOIs(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "缺少搜索关键词")
		return
	}
	g, ok := h.graph(c)
	if !ok {
		return
	}
	results := g.SearchPOIs(query)
	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// GetPOIByID 根据 ID 获取兴趣点
func (h *Handler) GetPOIByID(c *gin.Context) {
	g, ok := h.graph(c)
	if !ok {
		return
	}
	poi := g.POIByID(c.Param("id"))
	if poi == nil {
		abortWithError(c, http.StatusNotFound, CodeNotFound, "兴趣点不存在")
		return
	}
	c.JSON(http.StatusOK, poi)
}

// LocateRequest 外部识别服务给出的位置猜测
type LocateRequest struct {
	Guess      string   `json:"guess"`
	Candidates []string `json:"candidates"`
	Confidence *float64 `json:"confidence"`
}

// LocateResponse 把猜测映射到目录中的兴趣点
type LocateResponse struct {
	Location   *model.POI  `json:"location,omitempty"` // guess 对应的兴趣点
	Candidates []model.POI `json:"candidates"`         // 候选项中能识别的兴趣点 (去重, 保持顺序)
	Confidence *float64    `json:"confidence,omitempty"`
}

// Locate 将识别结果 (地点名称文本) 解析为兴趣点
func (h *Handler) Locate(c *gin.Context) {
	var req LocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "请求参数错误: "+err.Error())
		return
	}
	g, ok := h.graph(c)
	if !ok {
		return
	}

	resp := LocateResponse{
		Location:   g.FindPOIByName(req.Guess),
		Candidates: []model.POI{},
		Confidence: req.Confidence,
	}
	seen := make(map[string]bool)
	for _, name := range req.Candidates {
		poi := g.FindPOIByName(name)
		if poi == nil || seen[poi.ID] {
			continue
		}
		seen[poi.ID] = true
		resp.Candidates = append(resp.Candidates, *poi)
	}

	if resp.Location == nil && len(resp.Candidates) == 0 {
		abortWithError(c, http.StatusNotFound, CodeLocationNotFound, "无法识别当前位置")
		return
	}
	c.JSON(http.StatusOK, resp)
}

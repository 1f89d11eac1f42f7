package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"path-system/extract"

	"github.com/gin-gonic/gin"
)

// ExtractRequest 在线提取参数 (multipart 表单), 字段名与 pathgen 的命令行参数一致, 未填写的使用默认值
type ExtractRequest struct {
	Step    *int     `form:"step"`
	HueMin  *float64 `form:"hmin"`
	HueMax  *float64 `form:"hmax"`
	SatMin  *float64 `form:"smin"`
	ValMin  *float64 `form:"vmin"`
	Window  *int     `form:"window"`
	MinHits *int     `form:"minhits"`
	Radius  *float64 `form:"radius"`
}

// Apply 用请求中的字段覆盖默认参数
func (r ExtractRequest) Apply(p extract.Params) extract.Params {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setInt(&p.Step, r.Step)
	setInt(&p.Window, r.Window)
	setInt(&p.MinHits, r.MinHits)
	set(&p.HueMin, r.HueMin)
	set(&p.HueMax, r.HueMax)
	set(&p.SaturationMin, r.SatMin)
	set(&p.ValueMin, r.ValMin)
	set(&p.Radius, r.Radius)
	return p
}

// ExtractGraph 上传地图栅格, 在内存中运行提取流程并返回图文件.
// 结果不会替换当前加载的图.
func (h *Handler) ExtractGraph(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "请求参数错误: "+err.Error())
		return
	}
	params := req.Apply(h.Extract)
	if err := params.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, CodeBadRequest, "缺少地图文件 (image)")
		return
	}
	file, err := header.Open()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "读取上传文件失败")
		return
	}
	defer file.Close()

	// 先只读文件头检查尺寸, 避免解码超大图片耗尽内存
	if _, _, err := extract.CheckDimensions(file, h.MaxUploadPixels); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, extract.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		abortWithError(c, status, CodeBadRequest, err.Error())
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		abortWithError(c, http.StatusInternalServerError, CodeInternal, "读取上传文件失败")
		return
	}

	data, err := extract.Build(file, params)
	if errors.Is(err, extract.ErrDecode) {
		abortWithError(c, http.StatusUnprocessableEntity, CodeBadRequest, err.Error())
		return
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, CodeInternal, err.Error())
		return
	}

	summary := extract.SummaryOf(data)
	slog.Info("extracted graph from upload",
		slog.String("file", header.Filename),
		slog.String("user", c.GetString("username")),
		slog.Int("nodes", summary.Nodes),
		slog.Int("edges", summary.Edges),
	)
	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"graph":   data,
	})
}

package store

import (
	"sync"

	"path-system/algo"
	"path-system/model"
)

// Source 提供图文件和 POI 目录的数据源 (文件或数据库)
type Source interface {
	LoadGraphFile() (*model.GraphFile, error)
	LoadPOIs() ([]model.POI, error)
}

// FileSource 从本地文件读取
type FileSource struct {
	GraphPath string
	POIPath   string // 为空时不加载 POI
}

// LoadGraphFile 读取图文件
func (s FileSource) LoadGraphFile() (*model.GraphFile, error) {
	return ReadGraph(s.GraphPath)
}

// LoadPOIs 读取 POI 目录
func (s FileSource) LoadPOIs() ([]model.POI, error) {
	if s.POIPath == "" {
		return []model.POI{}, nil
	}
	return ReadPOIDirectory(s.POIPath)
}

// Loader 在进程生命周期内只构建一次图, 之后返回同一个只读实例
type Loader struct {
	source Source
	cal    algo.Calibration

	once  sync.Once
	graph *algo.Graph
	err   error
}

// NewLoader 创建加载器
func NewLoader(source Source, cal algo.Calibration) *Loader {
	return &Loader{source: source, cal: cal}
}

// Graph 第一次调用时加载并缓存, 之后直接返回缓存结果 (包括错误)
func (l *Loader) Graph() (*algo.Graph, error) {
	l.once.Do(func() {
		l.graph, l.err = l.load()
	})
	return l.graph, l.err
}

func (l *Loader) load() (*algo.Graph, error) {
	data, err := l.source.LoadGraphFile()
	if err != nil {
		return nil, err
	}
	pois, err := l.source.LoadPOIs()
	if err != nil {
		return nil, err
	}
	return algo.NewGraph(data, pois, l.cal)
}

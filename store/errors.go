package store

import "errors"

var (
	// ErrInvalidGraph 图文件结构不合法
	ErrInvalidGraph = errors.New("store: 图文件结构不合法")
	// ErrInvalidDirectory POI 目录不合法
	ErrInvalidDirectory = errors.New("store: POI 目录不合法")
)

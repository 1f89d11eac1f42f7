package algo

import "errors"

var (
	// ErrUnknownNode 边引用了不存在的节点
	ErrUnknownNode = errors.New("algo: 边引用了不存在的节点")
	// ErrSelfEdge 边的两端是同一个节点
	ErrSelfEdge = errors.New("algo: 不允许自环边")
	// ErrDuplicateEdge 同一对节点出现了多条边
	ErrDuplicateEdge = errors.New("algo: 重复的边")
	// ErrDuplicateNode 节点 ID 重复
	ErrDuplicateNode = errors.New("algo: 重复的节点 ID")
	// ErrMissingMeta 图文件缺少 meta
	ErrMissingMeta = errors.New("algo: 图文件缺少 meta")
)

// Package extract 把标注好的地图栅格转换成可导航的图.
//
// 流程 (离线, 每张地图执行一次):
//
//	栅格 --Segment--> 可通行掩码 --Sample--> 采样节点 --BuildEdges--> 边
//
// 节点 ID 按扫描顺序依次分配 (n0, n1, ...), 相同输入与参数必然得到相同结果.
// 所有边都被标记为无障碍可通行, 楼层恒为 1: 栅格本身不携带这些信息.
//
// 边长写入 pixels 字段 (像素), meters 只用于人工标注的真实距离.
// 旧版生成器把像素长度写在 meters 中, 这样的图文件需要用 pathgen 重新生成.
package extract

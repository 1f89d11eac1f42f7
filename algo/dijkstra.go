package algo

import (
	"container/heap"
	"fmt"
	"math"
	"slices"

	"path-system/model"
)

// PathOptions 寻路选项
type PathOptions struct {
	AccessibleOnly bool // 只走无障碍通道
}

// PathResult 路径规划结果
type PathResult struct {
	Points []model.Node     // 从起点到终点的节点序列 (包含两端)
	Stats  model.RouteStats // 距离 / 时间 / 步数
	Found  bool             // 是否找到路径
}

// PriorityQueueItem 优先队列中的元素
type PriorityQueueItem struct {
	NodeID string
	Cost   float64 // 距离成本 (米)
	Order  int     // 节点在列表中的位置, 成本相同时靠前的先出队
	Index  int     // 在堆中的索引
}

// PriorityQueue 实现 heap.Interface 接口的优先队列
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Cost != pq[j].Cost {
		return pq[i].Cost < pq[j].Cost
	}
	return pq[i].Order < pq[j].Order
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x any) {
	n := len(*pq)
	item := x.(*PriorityQueueItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // 避免内存泄漏
	item.Index = -1 // 标记为已移除
	*pq = old[0 : n-1]
	return item
}

// Dijkstra 计算两个节点之间的最短步行路径.
// 起点或终点不存在, 或终点不可达时返回 Found=false.
func (g *Graph) Dijkstra(startID, endID string, opts PathOptions) PathResult {
	if !g.HasNode(startID) || !g.HasNode(endID) {
		return PathResult{Found: false}
	}

	dist := make(map[string]float64, len(g.NodeList))
	prev := make(map[string]string)
	settled := make(map[string]bool)

	for _, n := range g.NodeList {
		dist[n.ID] = math.Inf(1)
	}
	dist[startID] = 0

	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{NodeID: startID, Cost: 0, Order: g.order[startID]})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*PriorityQueueItem)
		currentID := current.NodeID

		// 堆中可能残留过期的条目
		if settled[currentID] || current.Cost > dist[currentID] {
			continue
		}
		settled[currentID] = true

		// 到达终点, 提前退出
		if currentID == endID {
			break
		}

		for _, nb := range g.GetNeighbors(currentID, opts.AccessibleOnly) {
			if settled[nb.To] {
				continue
			}
			alt := dist[currentID] + nb.Meters
			if alt < dist[nb.To] {
				dist[nb.To] = alt
				prev[nb.To] = currentID
				heap.Push(&pq, &PriorityQueueItem{NodeID: nb.To, Cost: alt, Order: g.order[nb.To]})
			}
		}
	}

	if math.IsInf(dist[endID], 1) {
		return PathResult{Found: false}
	}

	// 回溯路径
	ids := []string{endID}
	for at := endID; at != startID; {
		at = prev[at]
		ids = append(ids, at)
	}
	slices.Reverse(ids)

	points := make([]model.Node, 0, len(ids))
	for _, id := range ids {
		points = append(points, *g.Nodes[id])
	}

	return PathResult{
		Points: points,
		Stats:  g.calibrator.Stats(dist[endID]),
		Found:  true,
	}
}

// FormatPath 格式化路径结果为可读字符串
func (g *Graph) FormatPath(result PathResult) string {
	if !result.Found {
		return "未找到路径"
	}

	output := fmt.Sprintf("总距离: %.1f 米\n", result.Stats.Meters)
	output += fmt.Sprintf("预计时间: %d 分钟 (约 %d 步)\n", result.Stats.Minutes, result.Stats.Steps)
	output += "路径:\n"
	for i, n := range result.Points {
		output += fmt.Sprintf("%d. %s (%.0f, %.0f)\n", i+1, n.ID, n.X, n.Y)
	}
	return output
}

// pathgen 从标注好的 PATH 地图栅格离线生成步行图文件
package main

import (
	"fmt"
	"log"
	"os"

	"path-system/extract"
	"path-system/store"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		params = extract.DefaultParams()
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "pathgen",
		Short: "从地图栅格生成步行图 (节点 + 边)",
		Long: `pathgen 按 HSV 阈值识别地图上的通道像素, 以固定步长采样节点,
再把半径内的节点两两相连, 输出 {meta, nodes, edges, pois} 图文件.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := generate(input, output, params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&params.Step, "step", params.Step, "采样步长 (像素)")
	flags.Float64Var(&params.HueMin, "hmin", params.HueMin, "色相下限 (0-180)")
	flags.Float64Var(&params.HueMax, "hmax", params.HueMax, "色相上限 (0-180)")
	flags.Float64Var(&params.SaturationMin, "smin", params.SaturationMin, "饱和度下限 (0-255)")
	flags.Float64Var(&params.ValueMin, "vmin", params.ValueMin, "亮度下限 (0-255)")
	flags.IntVar(&params.Window, "window", params.Window, "去噪邻域半径")
	flags.IntVar(&params.MinHits, "minhits", params.MinHits, "邻域内最少可通行像素数")
	flags.Float64Var(&params.Radius, "radius", params.Radius, "连接半径 (像素)")
	flags.StringVar(&input, "input", "assets/maps/path-map.png", "地图栅格文件")
	flags.StringVar(&output, "output", "data/path.graph.json", "输出的图文件")

	return cmd
}

// generate 读取栅格, 构建图并原子写出. 任何一步失败都不会留下输出文件.
func generate(input, output string, params extract.Params) (extract.Summary, error) {
	f, err := os.Open(input)
	if err != nil {
		return extract.Summary{}, fmt.Errorf("读取地图失败: %w", err)
	}
	defer f.Close()

	data, err := extract.Build(f, params)
	if err != nil {
		return extract.Summary{}, fmt.Errorf("%s: %w", input, err)
	}
	if err := store.WriteGraph(output, data); err != nil {
		return extract.Summary{}, err
	}
	return extract.SummaryOf(data), nil
}

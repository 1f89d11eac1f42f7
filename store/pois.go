package store

import (
	"fmt"
	"io"
	"os"

	"path-system/model"

	"gopkg.in/yaml.v3"
)

// DecodePOIDirectory 解析人工整理的 POI 目录 (YAML 列表, JSON 也可以)
func DecodePOIDirectory(r io.Reader) ([]model.POI, error) {
	var pois []model.POI
	if err := yaml.NewDecoder(r).Decode(&pois); err != nil {
		if err == io.EOF {
			return []model.POI{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	seen := make(map[string]bool, len(pois))
	for i := range pois {
		if err := validate.Struct(&pois[i]); err != nil {
			return nil, fmt.Errorf("%w: 第 %d 项: %s", ErrInvalidDirectory, i, describe(err))
		}
		if seen[pois[i].ID] {
			return nil, fmt.Errorf("%w: 重复的 id %q", ErrInvalidDirectory, pois[i].ID)
		}
		seen[pois[i].ID] = true
	}
	if pois == nil {
		pois = []model.POI{}
	}
	return pois, nil
}

// ReadPOIDirectory 从文件读取 POI 目录
func ReadPOIDirectory(path string) ([]model.POI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取 POI 目录失败: %w", err)
	}
	defer f.Close()
	return DecodePOIDirectory(f)
}

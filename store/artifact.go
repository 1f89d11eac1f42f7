package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"path-system/model"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// describe 把 validator 的错误整理为可读的字段路径列表
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// DecodeGraph 解析并校验图文件
func DecodeGraph(r io.Reader) (*model.GraphFile, error) {
	var data model.GraphFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: 解析 JSON 失败: %v", ErrInvalidGraph, err)
	}
	if err := ValidateGraph(&data); err != nil {
		return nil, err
	}
	if data.POIs == nil {
		data.POIs = []model.POI{}
	}
	return &data, nil
}

// ValidateGraph 检查必需字段是否存在
func ValidateGraph(data *model.GraphFile) error {
	if err := validate.Struct(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGraph, describe(err))
	}
	return nil
}

// ReadGraph 从文件读取图
func ReadGraph(path string) (*model.GraphFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("读取图文件失败: %w", err)
	}
	defer f.Close()

	data, err := DecodeGraph(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// EncodeGraph 写出图文件 JSON
func EncodeGraph(w io.Writer, data *model.GraphFile) error {
	if data.POIs == nil {
		data.POIs = []model.POI{}
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteGraph 原子地写出图文件: 先写临时文件再重命名, 失败时不会留下残缺文件
func WriteGraph(path string, data *model.GraphFile) error {
	if err := ValidateGraph(data); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".graph-*.json")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeGraph(tmp, data); err != nil {
		tmp.Close()
		return fmt.Errorf("写入图文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入图文件失败: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("保存图文件失败: %w", err)
	}
	return nil
}

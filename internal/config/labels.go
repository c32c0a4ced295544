package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const defaultFallbackLabel = "📚"

// CategoryLabels 分类名称到展示图标的映射，启动时解析一次
type CategoryLabels struct {
	labels   map[string]string
	fallback string
}

// labelsFile 标签配置文件结构
//
//	fallback = "📚"
//
//	[labels]
//	"Design" = "🎨"
type labelsFile struct {
	Fallback string            `toml:"fallback"`
	Labels   map[string]string `toml:"labels"`
}

// NewCategoryLabels 创建标签映射，fallback 为空时使用默认图标
func NewCategoryLabels(labels map[string]string, fallback string) *CategoryLabels {
	if fallback == "" {
		fallback = defaultFallbackLabel
	}
	copied := make(map[string]string, len(labels))
	for name, label := range labels {
		copied[name] = label
	}
	return &CategoryLabels{labels: copied, fallback: fallback}
}

// DefaultCategoryLabels 内置默认映射
func DefaultCategoryLabels() *CategoryLabels {
	return NewCategoryLabels(map[string]string{
		"Desenvolvimento Web": "🌐",
		"Mobile Development":  "📱",
		"Ciência de Dados":    "📊",
		"Design":              "🎨",
	}, defaultFallbackLabel)
}

// LoadCategoryLabels 从 TOML 文件加载标签映射
func LoadCategoryLabels(path string) (*CategoryLabels, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取分类标签文件失败: %w", err)
	}

	var file labelsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析分类标签文件 %s 失败: %w", path, err)
	}

	return NewCategoryLabels(file.Labels, file.Fallback), nil
}

// Label 返回分类对应的图标，未配置的分类返回兜底图标
func (l *CategoryLabels) Label(category string) string {
	if label, ok := l.labels[category]; ok {
		return label
	}
	return l.fallback
}

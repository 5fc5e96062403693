package dto

import "reelview-admin/internal/i18n"

// PageResponse 本地化页面交给渲染层的数据
type PageResponse struct {
	Page     string             `json:"page"`
	Locale   string             `json:"locale"`
	Title    string             `json:"title"`
	Messages i18n.MessageBundle `json:"messages"`
}

// LocalesResponse 支持的语言列表及路由模式
type LocalesResponse struct {
	Supported []string `json:"supported"`
	Default   string   `json:"default"`
	Mode      string   `json:"mode"`
}

// BundleHealth 单个语言包的加载状态
type BundleHealth struct {
	Locale   string `json:"locale"`
	Healthy  bool   `json:"healthy"`
	Messages int    `json:"messages"`
	Error    string `json:"error,omitempty"`
}

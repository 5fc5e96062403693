package dto

import "reelview-admin/pkg/utils"

// UpsertTranslationRequest 新增或覆盖一条翻译的请求参数
type UpsertTranslationRequest struct {
	Locale string `json:"locale" binding:"required,max=16" msg:"locale is required"`
	Key    string `json:"key" binding:"required,max=191" msg:"key must be a dotted message key"`
	Value  string `json:"value" binding:"required" msg:"value is required"`
}

// Validate 自定义验证逻辑（gin binding 无法表达的 key 规则）
func (r *UpsertTranslationRequest) Validate() error {
	return utils.ValidateMessageKey(r.Key)
}

// ListTranslationsQuery 翻译分页查询参数
type ListTranslationsQuery struct {
	Locale string `form:"locale"`
	Key    string `form:"key"`
	Page   int    `form:"page,default=1" binding:"min=1"`
	Size   int    `form:"size,default=10" binding:"min=1,max=100"`
}

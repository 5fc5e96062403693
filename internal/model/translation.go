package model

// Translation 持久化的翻译条目，可作为完整语言包，也可覆盖文件语言包中的同名 key
type Translation struct {
	BaseModel
	Locale string `gorm:"size:16;not null;uniqueIndex:idx_locale_key" json:"locale"`
	Key    string `gorm:"size:191;not null;uniqueIndex:idx_locale_key" json:"key"`
	Value  string `gorm:"type:text;not null" json:"value"`
}

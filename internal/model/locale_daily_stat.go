package model

type LocaleDailyStat struct {
	BaseModel
	Date    string `gorm:"type:date;not null;uniqueIndex:idx_date_locale_outcome" json:"date"` // 格式：YYYY-MM-DD
	Locale  string `gorm:"size:16;not null;uniqueIndex:idx_date_locale_outcome" json:"locale"`
	Outcome string `gorm:"size:16;not null;uniqueIndex:idx_date_locale_outcome" json:"outcome"`
	Count   int64  `gorm:"default:0" json:"count"`
}

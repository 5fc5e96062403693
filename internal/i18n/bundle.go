package i18n

import (
	"encoding/json"
	"sort"
)

// MessageBundle 某语言的只读翻译集合，key 为点分格式，如 "NavItems.dashboard"
type MessageBundle struct {
	locale   string
	messages map[string]string
}

// NewMessageBundle 复制 messages 创建语言包
func NewMessageBundle(locale string, messages map[string]string) MessageBundle {
	cp := make(map[string]string, len(messages))
	for k, v := range messages {
		cp[k] = v
	}
	return MessageBundle{locale: locale, messages: cp}
}

func (b MessageBundle) Locale() string {
	return b.locale
}

func (b MessageBundle) Get(key string) (string, bool) {
	v, ok := b.messages[key]
	return v, ok
}

func (b MessageBundle) Len() int {
	return len(b.messages)
}

// Messages 返回 key/value 的副本
func (b MessageBundle) Messages() map[string]string {
	cp := make(map[string]string, len(b.messages))
	for k, v := range b.messages {
		cp[k] = v
	}
	return cp
}

// Keys 返回排序后的 key
func (b MessageBundle) Keys() []string {
	keys := make([]string, 0, len(b.messages))
	for k := range b.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON 编码为扁平的 key/value 对象
func (b MessageBundle) MarshalJSON() ([]byte, error) {
	if b.messages == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b.messages)
}

package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"gopkg.in/yaml.v3"
)

// Loader 为已校验的语言加载语言包。
// 失败时返回 *MessageLoadFailure，绝不用其他语言的语言包代替
type Loader interface {
	Load(ctx context.Context, locale string) (MessageBundle, error)
}

// bundleExtensions 语言包文件的查找顺序，都不存在时使用第一个
var bundleExtensions = []string{".toml", ".json", ".yaml", ".yml"}

// FileLoader 从文件系统读取 <locale>.<ext> 语言包
type FileLoader struct {
	fsys           fs.FS
	files          map[string]string
	unmarshalFuncs map[string]goi18n.UnmarshalFunc
}

// NewFileLoader 根据注册表一次性建立语言到文件名的映射，文件路径不会来自请求输入
func NewFileLoader(fsys fs.FS, registry *Registry) *FileLoader {
	files := make(map[string]string)
	for _, locale := range registry.Supported() {
		files[locale] = locateBundle(fsys, locale)
	}

	return &FileLoader{
		fsys:  fsys,
		files: files,
		unmarshalFuncs: map[string]goi18n.UnmarshalFunc{
			"toml": toml.Unmarshal,
			"yaml": yaml.Unmarshal,
			"yml":  yaml.Unmarshal,
		},
	}
}

func locateBundle(fsys fs.FS, locale string) string {
	for _, ext := range bundleExtensions {
		name := locale + ext
		if _, err := fs.Stat(fsys, name); err == nil {
			return name
		}
	}
	return locale + bundleExtensions[0]
}

// File 返回语言对应的语言包文件名
func (l *FileLoader) File(locale string) (string, bool) {
	name, ok := l.files[locale]
	return name, ok
}

func (l *FileLoader) Load(ctx context.Context, locale string) (MessageBundle, error) {
	if err := ctx.Err(); err != nil {
		return MessageBundle{}, loadFailure(locale, err)
	}

	name, ok := l.files[locale]
	if !ok {
		return MessageBundle{}, loadFailure(locale, errors.New("no bundle file registered"))
	}

	buf, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return MessageBundle{}, loadFailure(locale, err)
	}

	mf, err := goi18n.ParseMessageFileBytes(buf, name, l.unmarshalFuncs)
	if err != nil {
		return MessageBundle{}, loadFailure(locale, fmt.Errorf("parse %s: %w", name, err))
	}

	messages := make(map[string]string, len(mf.Messages))
	for _, m := range mf.Messages {
		messages[m.ID] = messageText(m)
	}
	if len(messages) == 0 {
		return MessageBundle{}, loadFailure(locale, fmt.Errorf("%s: %w", name, ErrEmptyBundle))
	}

	return NewMessageBundle(locale, messages), nil
}

// messageText 取消息的非复数形式
func messageText(m *goi18n.Message) string {
	for _, s := range []string{m.Other, m.One, m.Many, m.Few, m.Two, m.Zero} {
		if s != "" {
			return s
		}
	}
	return ""
}

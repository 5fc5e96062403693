// Package locales 内嵌默认语言包，每个支持的语言一个 <locale>.toml
package locales

import "embed"

//go:embed *.toml
var FS embed.FS

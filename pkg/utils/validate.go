package utils

import (
	"fmt"
	"regexp"
	"unicode"
)

var messageKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*(\.[A-Za-z][A-Za-z0-9_-]*)*$`)

// ValidateMessageKey 校验点分格式的翻译 key，如 "NavItems.dashboard"
func ValidateMessageKey(key string) error {
	if key == "" {
		return fmt.Errorf("error.key_required")
	}

	if ContainsWhitespace(key) {
		return fmt.Errorf("error.key_cannot_contain_spaces")
	}

	if len(key) > 191 {
		return fmt.Errorf("error.key_max_length")
	}

	if !messageKeyPattern.MatchString(key) {
		return fmt.Errorf("error.key_invalid")
	}

	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

package jvm

import (
	"github.com/softlandia/cpd"
	"golang.org/x/text/encoding/charmap"
)

// windows консоль отдает вывод jps в OEM кодировке
func normalizeEncoding(str string) string {
	switch cpd.CodepageAutoDetect([]byte(str)) {
	case cpd.CP866:
		if msg, err := charmap.CodePage866.NewDecoder().String(str); err == nil {
			return msg
		}
	case cpd.CP1251:
		if msg, err := charmap.Windows1251.NewDecoder().String(str); err == nil {
			return msg
		}
	}
	return str
}

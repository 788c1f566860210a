package archive

import (
	"strings"
	"unicode"

	"github.com/gosimple/unidecode"
)

// Slugify transliterates s to ASCII, lowercases it and joins alphanumeric
// runs with single hyphens. A blank string yields "".
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(unidecode.Unidecode(s)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

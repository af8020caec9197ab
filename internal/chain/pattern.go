package chain

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Pattern turns a schema pattern into a JavaScript regex literal. Surrounding
// slashes are stripped, control characters and unescaped slashes are escaped,
// and the u flag is added when the pattern uses \u or \p escapes. The literal
// is always returned; err reports a pattern a JavaScript engine would reject.
func Pattern(p string) (lit string, err error) {
	if len(p) >= 2 && strings.HasPrefix(p, "/") && strings.HasSuffix(p, "/") {
		p = p[1 : len(p)-1]
	}
	body := escapePattern(p)
	unicode := strings.Contains(body, `\u`) || strings.Contains(body, `\p`)

	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if unicode {
		opts = regexp2.None
	}
	if _, cerr := regexp2.Compile(body, opts); cerr != nil {
		err = fmt.Errorf("pattern /%s/ does not compile: %v", body, cerr)
	}
	if unicode {
		return "/" + body + "/u", err
	}
	return "/" + body + "/", err
}

func escapePattern(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	escaped := false
	for _, r := range p {
		switch {
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r <= 0x1f || (r >= 0x7f && r <= 0x9f):
			fmt.Fprintf(&b, `\x%02x`, r)
		case r == 0xfffe || r == 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		case r == '/' && !escaped:
			b.WriteString(`\/`)
		default:
			b.WriteRune(r)
		}
		escaped = r == '\\' && !escaped
	}
	return b.String()
}

package jsvalue

import "strings"

// U+2028 and U+2029 are line terminators in older engines.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"`", "\\`",
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Escape escapes s for use inside any script string literal delimiter.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Quote returns s as a double-quoted script string literal.
func Quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// Package runeio renders runes for terminal output and diagnostics.
package runeio

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// C0Names maps the classic ASCII control characters to their mnemonics.
var C0Names = [32]string{
	"<NUL>", "<SOH>", "<STX>", "<ETX>", "<EOT>", "<ENQ>", "<ACK>", "<BEL>",
	"<BS>", "<HT>", "<NL>", "<VT>", "<NP>", "<CR>", "<SO>", "<SI>",
	"<DLE>", "<DC1>", "<DC2>", "<DC3>", "<DC4>", "<NAK>", "<SYN>", "<ETB>",
	"<CAN>", "<EM>", "<SUB>", "<ESC>", "<FS>", "<GS>", "<RS>", "<US>",
}

// CaretForm computes the ^-escaped printable form of a control rune, or
// returns "" for anything else.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// Printable renders s for an error message: C0 controls become mnemonics,
// other controls caret forms, and invalid utf8 bytes a \x escape.
func Printable(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && n == 1:
			sb.WriteString(`\x`)
			sb.WriteByte("0123456789abcdef"[s[i]>>4])
			sb.WriteByte("0123456789abcdef"[s[i]&0xf])
		case r < 0x20:
			sb.WriteString(C0Names[r])
		case unicode.IsControl(r):
			sb.WriteString(CaretForm(r))
		default:
			sb.WriteRune(r)
		}
		i += n
	}
	return sb.String()
}

package runeio

import (
	"fmt"
	"unicode"
)

// asciiControls holds the mnemonics of the C0 control characters.
var asciiControls = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "NL", "VT", "NP", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// Name returns a printable name for r, for diagnostics about unexpected
// characters: ASCII controls, space and delete get a mnemonic like "<ESC>",
// other non-printable runes a "U+XXXX" form, and printable runes are
// single quoted.
func Name(r rune) string {
	switch {
	case 0 <= r && int(r) < len(asciiControls):
		return "<" + asciiControls[r] + ">"
	case r == ' ':
		return "<SP>"
	case r == 0x7f:
		return "<DEL>"
	case !unicode.IsPrint(r):
		return fmt.Sprintf("%U", r)
	}
	return "'" + string(r) + "'"
}

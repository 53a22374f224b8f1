package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	softBreakRe = regexp.MustCompile(`=\r?\n`)
	qpEscapeRe  = regexp.MustCompile(`=([0-9A-Fa-f]{2})`)
	hwsRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe  = regexp.MustCompile(`\n{4,}`)
)

// Repair cleans up extraction artifacts commonly found in text pulled out
// of scanned document releases: quoted-printable escapes left by mail
// archives, NUL bytes, and runaway whitespace.
//
// Repair is pure, deterministic, and idempotent: hex escapes are decoded
// until none remain, so repairing already-repaired text changes nothing.
func Repair(text string) string {
	// Quoted-printable soft line breaks join the surrounding lines
	text = softBreakRe.ReplaceAllString(text, "")

	// Decode =XX hex escapes until a fixpoint. Decoded bytes can form
	// new escapes with their neighbors (double-encoded text does this,
	// "=3D41" decodes to "=41"), and each pass shortens the string, so
	// the loop terminates with no escapes left.
	for {
		decoded := qpEscapeRe.ReplaceAllStringFunc(text, func(m string) string {
			v, err := strconv.ParseUint(m[1:], 16, 8)
			if err != nil {
				return m
			}
			return string(rune(v))
		})
		if decoded == text {
			break
		}
		text = decoded
	}

	// Stray NULs from truncated OCR output
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r", "")

	// Collapse horizontal whitespace runs; newlines survive
	text = hwsRunRe.ReplaceAllString(text, " ")

	// Cap blank-line runs at two blank lines
	text = blankRunRe.ReplaceAllString(text, "\n\n\n")

	return strings.TrimSpace(text)
}

package pdf

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// extractTextFromStream parses PDF content stream operators for text.
func extractTextFromStream(data []byte) string {
	var sb strings.Builder

	lines := bytes.Split(data, []byte{'\n'})
	for _, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Tj operator: (text) Tj
		if bytes.HasSuffix(line, []byte("Tj")) {
			matches := pdfStringRe.FindAllSubmatch(line, -1)
			for _, m := range matches {
				text := decodePDFString(m[1])
				if text != "" {
					sb.WriteString(text)
				}
			}
		}

		// TJ operator: [(text) -100 (more text)] TJ
		if bytes.HasSuffix(line, []byte("TJ")) {
			matches := pdfStringRe.FindAllSubmatch(line, -1)
			for _, m := range matches {
				text := decodePDFString(m[1])
				if text != "" {
					sb.WriteString(text)
				}
			}
		}

		// ' operator (move to next line and show text): (text) '
		if bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")) {
			matches := pdfStringRe.FindAllSubmatch(line, -1)
			for _, m := range matches {
				text := decodePDFString(m[1])
				if text != "" {
					sb.WriteByte('\n')
					sb.WriteString(text)
				}
			}
		}

		// Td/TD operator (text positioning, treat as word break)
		if bytes.HasSuffix(line, []byte("Td")) || bytes.HasSuffix(line, []byte("TD")) {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}

		// T* operator (move to start of next line)
		if bytes.Equal(line, []byte("T*")) {
			sb.WriteByte('\n')
		}
	}

	return cleanStreamText(sb.String())
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '(':
				sb.WriteByte('(')
			case ')':
				sb.WriteByte(')')
			default:
				// Octal escape (e.g. \040 for space)
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanStreamText normalises whitespace in extracted PDF text.
func cleanStreamText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}

// extractFilledRects walks a content stream for rectangle and fill
// operators, tracking the current fill color.
//
// The relevant operator sequence is:
//
//	0 0 0 rg          set RGB fill color
//	0.5 g             set gray fill level
//	100 200 300 20 re append rectangle to the current path
//	f                 fill the path
//
// Rectangles accumulate on the path until a fill or path-clearing
// operator; only fill operators commit them with the active color.
func extractFilledRects(data []byte) []FilledRect {
	var rects []FilledRect

	fillR, fillG, fillB := 0.0, 0.0, 0.0
	var pending []FilledRect

	tokens := strings.Fields(string(data))
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "rg":
			if r, g, b, ok := lastThreeFloats(tokens, i); ok {
				fillR, fillG, fillB = r, g, b
			}
		case "g":
			if v, ok := lastFloat(tokens, i); ok {
				fillR, fillG, fillB = v, v, v
			}
		case "re":
			if i >= 4 {
				x, errX := strconv.ParseFloat(tokens[i-4], 64)
				y, errY := strconv.ParseFloat(tokens[i-3], 64)
				w, errW := strconv.ParseFloat(tokens[i-2], 64)
				h, errH := strconv.ParseFloat(tokens[i-1], 64)
				if errX == nil && errY == nil && errW == nil && errH == nil {
					pending = append(pending, FilledRect{X: x, Y: y, Width: w, Height: h})
				}
			}
		case "f", "f*", "F", "b", "b*", "B", "B*":
			for _, r := range pending {
				r.R, r.G, r.B = fillR, fillG, fillB
				rects = append(rects, r)
			}
			pending = nil
		case "n", "S", "s", "W":
			// Path consumed without a fill
			pending = nil
		}
	}

	return rects
}

// lastThreeFloats parses the three tokens preceding index i.
func lastThreeFloats(tokens []string, i int) (float64, float64, float64, bool) {
	if i < 3 {
		return 0, 0, 0, false
	}
	a, errA := strconv.ParseFloat(tokens[i-3], 64)
	b, errB := strconv.ParseFloat(tokens[i-2], 64)
	c, errC := strconv.ParseFloat(tokens[i-1], 64)
	if errA != nil || errB != nil || errC != nil {
		return 0, 0, 0, false
	}
	return a, b, c, true
}

// lastFloat parses the token preceding index i.
func lastFloat(tokens []string, i int) (float64, bool) {
	if i < 1 {
		return 0, false
	}
	v, err := strconv.ParseFloat(tokens[i-1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

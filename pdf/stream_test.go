package pdf

import (
	"testing"
)

func TestExtractTextFromStream(t *testing.T) {
	stream := []byte(`BT
/F1 12 Tf
72 720 Td
(Hello) Tj
(World) Tj
T*
[(Second) -250 (line)] TJ
ET`)

	got := extractTextFromStream(stream)
	want := "HelloWorld Secondline"
	if got != want {
		t.Errorf("extractTextFromStream() = %q, want %q", got, want)
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "hello", want: "hello"},
		{name: "escaped parens", raw: `\(quoted\)`, want: "(quoted)"},
		{name: "newline escape", raw: `line\nbreak`, want: "line\nbreak"},
		{name: "octal escape", raw: `a\040b`, want: "a b"},
		{name: "backslash", raw: `a\\b`, want: `a\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodePDFString([]byte(tt.raw))
			if got != tt.want {
				t.Errorf("decodePDFString(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExtractFilledRects(t *testing.T) {
	stream := []byte(`q
0 0 0 rg
100 200 150 20 re
f
1 1 1 rg
10 10 50 50 re
f
Q`)

	rects := extractFilledRects(stream)
	if len(rects) != 2 {
		t.Fatalf("Expected 2 rects, got %d", len(rects))
	}

	black := rects[0]
	if black.X != 100 || black.Y != 200 || black.Width != 150 || black.Height != 20 {
		t.Errorf("Unexpected black rect: %+v", black)
	}
	if black.R != 0 || black.G != 0 || black.B != 0 {
		t.Errorf("Expected black fill, got %+v", black)
	}

	white := rects[1]
	if white.R != 1 || white.G != 1 || white.B != 1 {
		t.Errorf("Expected white fill, got %+v", white)
	}
}

func TestExtractFilledRectsGrayFill(t *testing.T) {
	stream := []byte(`0.05 g
50 60 200 15 re
f`)

	rects := extractFilledRects(stream)
	if len(rects) != 1 {
		t.Fatalf("Expected 1 rect, got %d", len(rects))
	}
	if rects[0].R != 0.05 || rects[0].G != 0.05 || rects[0].B != 0.05 {
		t.Errorf("Expected gray fill 0.05, got %+v", rects[0])
	}
}

func TestExtractFilledRectsUnfilledPathDropped(t *testing.T) {
	stream := []byte(`0 0 0 rg
100 200 150 20 re
n
10 10 50 50 re
f`)

	rects := extractFilledRects(stream)
	if len(rects) != 1 {
		t.Fatalf("Expected 1 rect, got %d", len(rects))
	}
	if rects[0].X != 10 {
		t.Errorf("Expected the filled rect, got %+v", rects[0])
	}
}

func TestExtractFilledRectsAccumulatesUntilFill(t *testing.T) {
	stream := []byte(`0 0 0 rg
1 2 3 4 re
5 6 7 8 re
f`)

	rects := extractFilledRects(stream)
	if len(rects) != 2 {
		t.Fatalf("Expected 2 rects from one fill, got %d", len(rects))
	}
}

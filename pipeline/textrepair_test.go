package pipeline

import (
	"strings"
	"testing"
)

func TestRepairQuotedPrintable(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "soft line break",
			in:   "a long line that was wrap=\nped by the archive",
			want: "a long line that was wrapped by the archive",
		},
		{
			name: "soft line break with CR",
			in:   "wrap=\r\nped",
			want: "wrapped",
		},
		{
			name: "hex escapes",
			in:   "subject=3A redacted=20memo",
			want: "subject: redacted memo",
		},
		{
			name: "double-encoded escapes decode fully",
			in:   "=3D41",
			want: "A",
		},
		{
			name: "double-encoded space",
			in:   "a=3D20b",
			want: "a b",
		},
		{
			name: "double-encoded equals sign",
			in:   "file =3D3D name",
			want: "file = name",
		},
		{
			name: "nul bytes stripped",
			in:   "before\x00after",
			want: "beforeafter",
		},
		{
			name: "carriage returns stripped",
			in:   "line one\r\nline two",
			want: "line one\nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Repair(tt.in); got != tt.want {
				t.Errorf("Repair(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRepairWhitespace(t *testing.T) {
	in := "word1    word2\t\tword3\n\n\n\n\n\nword4"
	want := "word1 word2 word3\n\n\nword4"
	if got := Repair(in); got != want {
		t.Errorf("Repair(%q) = %q, want %q", in, got, want)
	}
}

func TestRepairPreservesPageBreaks(t *testing.T) {
	in := "page one" + pageBreak + "page two"
	got := Repair(in)
	if !strings.Contains(got, "--- PAGE BREAK ---") {
		t.Errorf("Page break marker lost: %q", got)
	}
}

func TestRepairStable(t *testing.T) {
	inputs := []string{
		"wrap=\nped  text\x00 with=20escapes\n\n\n\n\nend",
		"=3D41",
		"=3D20",
		"file =3D3D name",
		"deeply=3D3D3D41encoded",
	}
	for _, in := range inputs {
		once := Repair(in)
		twice := Repair(once)
		if once != twice {
			t.Errorf("Repair(%q) not stable: %q vs %q", in, once, twice)
		}
		if qpEscapeRe.MatchString(once) {
			t.Errorf("Repair(%q) left an undecoded escape: %q", in, once)
		}
	}
}

package template

import (
	"errors"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		delims Delims
		want   []segment
	}{
		{
			name:   "empty template",
			src:    "",
			delims: defaultDelims,
			want:   nil,
		},
		{
			name:   "literal only",
			src:    "Plain text\nwith newline ",
			delims: defaultDelims,
			want:   []segment{{segLiteral, "Plain text\nwith newline ", 0}},
		},
		{
			name:   "expression between literals",
			src:    "Hello {{ name }}!",
			delims: defaultDelims,
			want: []segment{
				{segLiteral, "Hello ", 0},
				{segExpr, " name ", 8},
				{segLiteral, "!", 16},
			},
		},
		{
			name:   "adjacent expressions",
			src:    "{{x}}{{y}}",
			delims: defaultDelims,
			want: []segment{
				{segExpr, "x", 2},
				{segExpr, "y", 7},
			},
		},
		{
			name:   "stray close delimiter is literal",
			src:    "a }} b",
			delims: defaultDelims,
			want:   []segment{{segLiteral, "a }} b", 0}},
		},
		{
			name:   "custom delimiters",
			src:    "Hi <% name %>, {{ not }}",
			delims: Delims{Left: "<%", Right: "%>"},
			want: []segment{
				{segLiteral, "Hi ", 0},
				{segExpr, " name ", 5},
				{segLiteral, ", {{ not }}", 13},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lex(tt.src, tt.delims)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLex_Errors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantOffset int
	}{
		{
			name:       "unterminated",
			src:        "Hello {{ name",
			wantOffset: 6,
		},
		{
			name:       "unterminated after valid expression",
			src:        "{{ a }} and {{ b",
			wantOffset: 12,
		},
		{
			name:       "nested open delimiter",
			src:        "{{ a {{ b }} }}",
			wantOffset: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lex(tt.src, defaultDelims)
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if synErr.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", synErr.Offset, tt.wantOffset)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Error("error should match ErrSyntax")
			}
		})
	}
}

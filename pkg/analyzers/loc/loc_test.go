package loc //nolint:testpackage // testing internal implementation.

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solstat/solstat/pkg/metrics"
)

func TestCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   metrics.LineProfile
	}{
		{
			name:   "empty file",
			source: "",
			want:   metrics.LineProfile{Blank: 1},
		},
		{
			name:   "single line no newline",
			source: "fn main() {}",
			want:   metrics.LineProfile{Code: 1},
		},
		{
			name:   "trailing newline is not a blank line",
			source: "fn main() {}\n",
			want:   metrics.LineProfile{Code: 1},
		},
		{
			name:   "line comments and blanks",
			source: "// header\n\nfn main() {\n}\n",
			want:   metrics.LineProfile{Code: 2, Comment: 1, Blank: 1},
		},
		{
			name:   "block comment spanning lines",
			source: "/* first\n   second\n   third */\nfn main() {}\n",
			want:   metrics.LineProfile{Code: 1, Comment: 3},
		},
		{
			name:   "code after block comment close",
			source: "/* note */ fn main() {}\n",
			want:   metrics.LineProfile{Code: 1},
		},
		{
			name:   "doc comments",
			source: "/// docs\n//! module docs\npub fn f() {}\n",
			want:   metrics.LineProfile{Code: 1, Comment: 2},
		},
		{
			name:   "block comment opened after code",
			source: "let x = 1; /* start of block\nstill a comment\n*/\n",
			want:   metrics.LineProfile{Code: 1, Comment: 2},
		},
		{
			name:   "blank line inside block comment",
			source: "/* a\n\nb */\n",
			want:   metrics.LineProfile{Comment: 3},
		},
		{
			name:   "nested block comments",
			source: "/* outer /* inner */\nstill comment */\nfn main() {}\n",
			want:   metrics.LineProfile{Code: 1, Comment: 2},
		},
		{
			name:   "line comment after code",
			source: "let y = 2; // trailing\n",
			want:   metrics.LineProfile{Code: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Count([]byte(tt.source)))
		})
	}
}

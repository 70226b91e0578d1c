package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPreview(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   []Hunk
	}{
		{
			name:   "identical",
			before: "a\nb\n",
			after:  "a\nb\n",
		},
		{
			name:   "one line replaced",
			before: "a\nText(\"Hi\")\nc\n",
			after:  "a\nText(tr(\"hi\"))\nc\n",
			want:   []Hunk{{Line: 2, Before: []string{`Text("Hi")`}, After: []string{`Text(tr("hi"))`}}},
		},
		{
			name:   "line inserted",
			before: "import 'a.dart';\n\nvoid main() {}\n",
			after:  "import 'a.dart';\nimport 'b.dart';\n\nvoid main() {}\n",
			want:   []Hunk{{Line: 2, Before: []string{}, After: []string{"import 'b.dart';"}}},
		},
		{
			name:   "lines joined",
			before: "x = const\n    Text('A');\ny\n",
			after:  "x = Text(tr('a'));\ny\n",
			want:   []Hunk{{Line: 1, Before: []string{"x = const", "    Text('A');"}, After: []string{"x = Text(tr('a'));"}}},
		},
		{
			name:   "separate changes",
			before: "a\nText('X')\nb\nc\nText('Y')\n",
			after:  "a\nText(tr('x'))\nb\nc\nText(tr('y'))\n",
			want: []Hunk{
				{Line: 2, Before: []string{"Text('X')"}, After: []string{"Text(tr('x'))"}},
				{Line: 5, Before: []string{"Text('Y')"}, After: []string{"Text(tr('y'))"}},
			},
		},
		{
			name:   "change at end",
			before: "a\nb",
			after:  "a\nc",
			want:   []Hunk{{Line: 2, Before: []string{"b"}, After: []string{"c"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPreview("f.dart", tt.before, tt.after)
			assert.Equal(t, "f.dart", p.Path)
			require.Len(t, p.Hunks, len(tt.want))
			for i, h := range p.Hunks {
				assert.Equal(t, tt.want[i].Line, h.Line)
				assert.ElementsMatch(t, tt.want[i].Before, h.Before)
				assert.ElementsMatch(t, tt.want[i].After, h.After)
			}
		})
	}
}

func TestPreviewString(t *testing.T) {
	p := NewPreview("lib/home.dart", "a\nText(\"Hi\")\n", "a\nText(tr(\"hi\"))\n")
	want := "--- lib/home.dart\n+++ lib/home.dart\n" +
		"@@ line 2 @@\n" +
		"-Text(\"Hi\")\n" +
		"+Text(tr(\"hi\"))\n"
	assert.Equal(t, want, p.String())
}

package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const screen = `import 'package:flutter/material.dart';

Widget build(BuildContext context) {
  return Column(children: [Text("Hello"), MyText('World')]);
}
`

func accessorRewriter() *Rewriter {
	return New(Options{UseAccessor: true, AccessorClass: "Accessor"})
}

func TestRewrite_EndToEnd(t *testing.T) {
	rec := accessorRewriter().Rewrite(screen, map[string]string{"Hello": "hello", "World": "world"})

	require.True(t, rec.Changed)
	require.True(t, rec.ImportNeeded)
	require.Equal(t, 2, rec.Replacements)
	require.Equal(t, `import 'package:flutter/material.dart';

Widget build(BuildContext context) {
  return Column(children: [Text(Accessor.of(context).hello), MyText(Accessor.of(context).world)]);
}
`, rec.Content)
}

func TestRewrite_Idempotent(t *testing.T) {
	repl := map[string]string{"Hello": "hello", "World": "world"}
	r := accessorRewriter()

	first := r.Rewrite(screen, repl)
	second := r.Rewrite(first.Content, repl)

	require.False(t, second.Changed)
	require.False(t, second.ImportNeeded)
	require.Equal(t, 0, second.Replacements)
	require.Equal(t, first.Content, second.Content)
}

func TestRewrite_NullAssertionFollowsFile(t *testing.T) {
	content := "Text(Accessor.of(context)!.title),\nText('Hello'),\n"
	rec := accessorRewriter().Rewrite(content, map[string]string{"Hello": "hello"})

	require.Equal(t, "Text(Accessor.of(context)!.title),\nText(Accessor.of(context)!.hello),\n", rec.Content)
}

func TestRewrite_TranslateFunction(t *testing.T) {
	r := New(Options{})
	rec := r.Rewrite(`Text('Hello World')`, map[string]string{"Hello World": "hello.world"})

	require.Equal(t, `Text(tr("hello.world"))`, rec.Content)
	require.True(t, rec.Changed)
	require.False(t, rec.ImportNeeded)

	again := r.Rewrite(rec.Content, map[string]string{"Hello World": "hello.world", "hello.world": "x"})
	require.False(t, again.Changed)
}

func TestRewrite_DotKeyBecomesIdentifier(t *testing.T) {
	rec := accessorRewriter().Rewrite(`Text('Hello World')`, map[string]string{"Hello World": "hello.world"})
	require.Equal(t, `Text(Accessor.of(context).hello_world)`, rec.Content)
}

func TestRewrite_ConstHandling(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{
			name: "const constructor dropped",
			opts: Options{UseAccessor: true, AccessorClass: "Accessor"},
			in:   `child: const Text('Hello'),`,
			want: `child: Text(Accessor.of(context).hello),`,
		},
		{
			name: "const list dropped",
			opts: Options{UseAccessor: true, AccessorClass: "Accessor"},
			in:   `children: const <Widget>[Icon(Icons.add), Text('Hello')],`,
			want: `children: <Widget>[Icon(Icons.add), Text(Accessor.of(context).hello)],`,
		},
		{
			name: "outer const dropped, sibling calls skipped",
			opts: Options{UseAccessor: true, AccessorClass: "Accessor"},
			in:   "const Padding(\n  padding: EdgeInsets.all(8),\n  child: Text('Hello'),\n)",
			want: "Padding(\n  padding: EdgeInsets.all(8),\n  child: Text(Accessor.of(context).hello),\n)",
		},
		{
			name: "statement boundary",
			opts: Options{UseAccessor: true, AccessorClass: "Accessor"},
			in:   "const gap = SizedBox(height: 8);\nfinal w = Text('Hello');",
			want: "const gap = SizedBox(height: 8);\nfinal w = Text(Accessor.of(context).hello);",
		},
		{
			name: "brackets in comments ignored",
			opts: Options{UseAccessor: true, AccessorClass: "Accessor"},
			in:   "return const Center(\n  // 1) greeting\n  child: Text('Hello'),\n);",
			want: "return Center(\n  // 1) greeting\n  child: Text(Accessor.of(context).hello),\n);",
		},
		{
			name: "block comment and url literal",
			opts: Options{UseAccessor: true, AccessorClass: "Accessor"},
			in:   "const Column(children: [/* ) */ Link('https://a.b/c)'), Text('Hello')])",
			want: "Column(children: [/* ) */ Link('https://a.b/c)'), Text(Accessor.of(context).hello)])",
		},
		{
			name: "kept with tr and preserve",
			opts: Options{PreserveConst: true},
			in:   `child: const Text('Hello'),`,
			want: `child: const Text(tr("hello")),`,
		},
		{
			name: "dropped with tr",
			opts: Options{},
			in:   `child: const Text('Hello'),`,
			want: `child: Text(tr("hello")),`,
		},
		{
			name: "preserve ignored with accessor",
			opts: Options{UseAccessor: true, PreserveConst: true, AccessorClass: "Accessor"},
			in:   `const Text('Hello')`,
			want: `Text(Accessor.of(context).hello)`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := New(tc.opts).Rewrite(tc.in, map[string]string{"Hello": "hello"})
			require.Equal(t, tc.want, rec.Content)
		})
	}
}

func TestRewrite_MaskedLines(t *testing.T) {
	content := "// i18n-ignore\nText('Hello'),\nText.rich(TextSpan(text: 'Hello')),\nText('Hello'),\n"
	rec := accessorRewriter().Rewrite(content, map[string]string{"Hello": "hello"})

	require.False(t, rec.Changed)
	require.Equal(t, content, rec.Content)
}

func TestRewrite_UnbalancedQuotes(t *testing.T) {
	content := `Text('Hello); Text("World")`
	require.NotPanics(t, func() {
		rec := accessorRewriter().Rewrite(content, map[string]string{"Hello": "hello", "World": "world"})
		require.Equal(t, `Text('Hello); Text(Accessor.of(context).world)`, rec.Content)
	})
}

func TestRewrite_EscapedLiteral(t *testing.T) {
	rec := accessorRewriter().Rewrite(`Text('Don\'t panic')`, map[string]string{"Don't panic": "dontPanic"})
	require.Equal(t, `Text(Accessor.of(context).dontPanic)`, rec.Content)
}

func TestRewrite_Unmapped(t *testing.T) {
	content := `Text('Hello'), Text('Other')`
	rec := accessorRewriter().Rewrite(content, map[string]string{"Hello": "hello"})
	require.Equal(t, `Text(Accessor.of(context).hello), Text('Other')`, rec.Content)
	require.Equal(t, 1, rec.Replacements)

	none := accessorRewriter().Rewrite(content, nil)
	require.False(t, none.Changed)
	require.Equal(t, content, none.Content)
}

func TestEnsureImport(t *testing.T) {
	const imp = "import 'package:app/l10n/app_localizations.dart';"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "after last import",
			in:   "import 'a.dart';\nimport 'b.dart';\n\nvoid main() {}\n",
			want: "import 'a.dart';\nimport 'b.dart';\n" + imp + "\n\nvoid main() {}\n",
		},
		{
			name: "no directives",
			in:   "void main() {}\n",
			want: imp + "\n\nvoid main() {}\n",
		},
		{
			name: "multi-line directive",
			in:   "import 'a.dart'\n    show A;\nvoid f() {}\n",
			want: "import 'a.dart'\n    show A;\n" + imp + "\nvoid f() {}\n",
		},
		{
			name: "after part",
			in:   "library app;\npart 'x.dart';\n",
			want: "library app;\npart 'x.dart';\n" + imp + "\n",
		},
		{
			name: "no trailing newline",
			in:   "import 'a.dart';",
			want: "import 'a.dart';\n" + imp + "\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := EnsureImport(tc.in, imp)
			require.True(t, changed)
			require.Equal(t, tc.want, got)

			again, changed := EnsureImport(got, imp)
			require.False(t, changed)
			require.Equal(t, got, again)
		})
	}
}

package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minios-linux/arbkit/arbfile"
)

func TestMerge_AddsEntries(t *testing.T) {
	f := arbfile.New("")
	res := Merge(f, []Entry{{"hello", "Hello"}, {"world", "World"}}, Options{})

	require.Equal(t, 2, res.Added)
	require.Equal(t, []string{"hello", "world"}, f.Keys())
	require.Equal(t, map[string]string{"Hello": "hello", "World": "world"}, res.Keys)
}

func TestMerge_RoundTripAddsNothing(t *testing.T) {
	entries := []Entry{
		{"hello", "Hello"},
		{"youHaveCountItemS", "You have {count} item(s)"},
		{"heLikesIt", "He likes it"},
		{"ok", "OK"},
	}

	for _, mode := range []Mode{ModeDedupe, ModeVerbatim} {
		t.Run(string(mode), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "app_en.arb")

			f, err := Load(path)
			require.NoError(t, err)
			first := Merge(f, entries, Options{Mode: mode})
			require.Equal(t, len(entries), first.Added)
			require.NoError(t, Save(f, path))

			g, err := Load(path)
			require.NoError(t, err)
			second := Merge(g, entries, Options{Mode: mode})
			require.Equal(t, 0, second.Added)
			require.Empty(t, second.Conflicts)
			require.Empty(t, second.Annotated)
			require.Equal(t, first.Keys, second.Keys)
		})
	}
}

func TestMerge_DedupeByValue(t *testing.T) {
	f := arbfile.New("")
	f.Append("greeting", arbfile.Plain("Hello"))

	res := Merge(f, []Entry{{"hello", "Hello"}}, Options{Mode: ModeDedupe})
	require.Equal(t, 0, res.Added)
	require.Equal(t, "greeting", res.Reused["Hello"])
	require.Equal(t, "greeting", res.Keys["Hello"])
	require.False(t, f.HasKey("hello"))
}

func TestMerge_DedupeSuffixesTakenKey(t *testing.T) {
	f := arbfile.New("")
	f.Append("hello", arbfile.Plain("Hello there"))

	res := Merge(f, []Entry{{"hello", "Hello"}}, Options{Mode: ModeDedupe})
	require.Equal(t, 1, res.Added)
	require.Equal(t, "hello_1", res.Keys["Hello"])
	v, _ := f.Get("hello")
	require.Equal(t, "Hello there", v)
}

func TestMerge_VerbatimKeepsCallerKey(t *testing.T) {
	f := arbfile.New("")
	f.Append("greeting", arbfile.Plain("Hello"))

	res := Merge(f, []Entry{{"hello", "Hello"}}, Options{Mode: ModeVerbatim})
	require.Equal(t, 1, res.Added)
	require.True(t, f.HasKey("hello"))
	require.True(t, f.HasKey("greeting"))
}

func TestMerge_VerbatimConflictKeepsExisting(t *testing.T) {
	f := arbfile.New("")
	f.Append("title", arbfile.Plain("Home"))

	res := Merge(f, []Entry{{"title", "Dashboard"}}, Options{Mode: ModeVerbatim})
	require.Equal(t, 0, res.Added)
	require.Equal(t, []string{"title"}, res.Conflicts)
	v, _ := f.Get("title")
	require.Equal(t, "Home", v)
}

func TestMerge_ReplacesInvalidEntries(t *testing.T) {
	f, err := arbfile.Parse([]byte(`{"title": null, "name": ""}`))
	require.NoError(t, err)

	for _, mode := range []Mode{ModeDedupe, ModeVerbatim} {
		g, _ := arbfile.Parse([]byte(`{"title": null, "name": ""}`))
		res := Merge(g, []Entry{{"title", "Home"}, {"name", "Your name"}}, Options{Mode: mode})
		require.Equal(t, 2, res.Added, string(mode))
		v, _ := g.Get("title")
		require.Equal(t, "Home", v)
		require.Equal(t, []string{"title", "name"}, g.Keys())
	}
	require.Equal(t, 2, len(f.Keys()))
}

func TestMerge_PluralEntry(t *testing.T) {
	f := arbfile.New("")
	Merge(f, []Entry{{"items", "You have {count} item(s)"}}, Options{})

	v, ok := f.Value("items")
	require.True(t, ok)
	require.Equal(t, arbfile.Plural{One: "You have {count} item", Other: "You have {count} items"}, v)
}

func TestMerge_NoSpuriousPlural(t *testing.T) {
	f := arbfile.New("")
	Merge(f, []Entry{{"pushed", "You have pushed the button"}}, Options{})

	v, _ := f.Value("pushed")
	require.Equal(t, arbfile.Plain("You have pushed the button"), v)
}

func TestMerge_AmbiguityAnnotations(t *testing.T) {
	f := arbfile.New("")
	res := Merge(f, []Entry{
		{"ok", "OK"},
		{"confirmDelete", "Delete"},
		{"save", "Save changes"},
		{"title", "Welcome"},
	}, Options{})

	require.Equal(t, []string{"ok", "confirmDelete", "save"}, res.Annotated)
	d, ok := f.Description("confirmDelete")
	require.True(t, ok)
	require.Contains(t, d, `"Delete"`)
	require.False(t, f.HasMeta("title"))
}

func TestMerge_ExistingMetadataKept(t *testing.T) {
	f, err := arbfile.Parse([]byte(`{"ok": "OK", "@ok": {"description": "Dialog confirm"}}`))
	require.NoError(t, err)

	res := Merge(f, nil, Options{})
	require.Empty(t, res.Annotated)
	d, _ := f.Description("ok")
	require.Equal(t, "Dialog confirm", d)
}

func TestLoad_MalformedFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_en.arb")
	require.NoError(t, os.WriteFile(path, []byte(`{"broken": `), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, f.Len())

	Merge(f, []Entry{{"hello", "Hello"}}, Options{})
	require.NoError(t, Save(f, path))

	g, err := arbfile.ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"hello"}, g.Keys())
}

func TestLoad_PreservesLocale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_en.arb")
	require.NoError(t, os.WriteFile(path, []byte(`{"@@locale": "en", "a": "Alpha"}`), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	Merge(f, []Entry{{"b", "Beta"}}, Options{})
	require.NoError(t, Save(f, path))

	g, err := arbfile.ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, "en", g.Locale())
}

func TestSave_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	ro := filepath.Join(dir, "ro")
	require.NoError(t, os.Mkdir(ro, 0500))

	err := Save(arbfile.New(""), filepath.Join(ro, "app_en.arb"))
	require.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, ModeDedupe, m)
	m, err = ParseMode("verbatim")
	require.NoError(t, err)
	require.Equal(t, ModeVerbatim, m)
	_, err = ParseMode("overwrite")
	require.Error(t, err)
}

func TestMerge_DedupeMatchesStoredVariant(t *testing.T) {
	f := arbfile.New("")
	value := "You have {count} item(s)"
	first := Merge(f, []Entry{{Key: "items", Value: value}}, Options{})
	require.Equal(t, 1, first.Added)

	second := Merge(f, []Entry{{Key: "youHaveCountItemS", Value: value}, {Key: "other", Value: value}}, Options{})
	require.Equal(t, 0, second.Added)
	require.Equal(t, map[string]string{value: "items"}, second.Reused)
	require.Equal(t, []string{"items"}, f.Keys())
}

func TestReuseIndex(t *testing.T) {
	f := arbfile.New("")
	f.Append("hello", arbfile.Plain("Hello"))
	f.Append("hi", arbfile.Plain("Hello"))
	f.Append("broken", arbfile.Plain(""))
	require.Equal(t, map[string]string{"Hello": "hello"}, ReuseIndex(f))
}

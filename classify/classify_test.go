package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultExclusions(t *testing.T) {
	c := Default()

	excluded := []string{
		"https://a.b/c",
		"http://example.com",
		"www.example.com",
		"mailto:support@example.com",
		"assets/images/logo.png",
		"logo.svg",
		"lib/src/widgets",
		"42",
		"3.14",
		"1.2.3",
		"550e8400-e29b-41d4-a716-446655440000",
		"#FF00FF",
		"#fff",
		"Colors.red",
		"@Override",
		"_privateVar",
	}
	for _, v := range excluded {
		require.Truef(t, c.IsExcluded(v, ""), "expected %q to be excluded", v)
		require.Falsef(t, c.IsTranslatable(v, ""), "expected %q to be untranslatable", v)
	}

	require.False(t, c.IsExcluded("Welcome to our app", ""))
	require.True(t, c.IsTranslatable("Welcome to our app", ""))
}

func TestIsCodeLike(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"a", true},
		{" ", true},
		{"Hello $name", true},
		{"Total: ${total}", true},
		{"API_KEY", true},
		{"DEBUG", true},
		{"userName", true},
		{"user_name", true},
		{"a == b", true},
		{"x && y", true},
		{"callMe()", true},
		{"list[]", true},
		{"OK", false},
		{"hello", false},
		{"Sign in", false},
		{"Price is $5", false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			require.Equal(t, tc.want, IsCodeLike(tc.value))
		})
	}
}

func TestContextRules(t *testing.T) {
	c := Default()

	require.True(t, c.IsExcluded("Hello there", `import 'Hello there';`))
	require.True(t, c.IsExcluded("Main screen", `final k = ValueKey('Main screen');`))
	require.True(t, c.IsExcluded("Loaded items", `debugPrint("Loaded items");`))
	require.False(t, c.IsExcluded("Loaded items", `Text("Loaded items"),`))
}

func TestNew_UserPatternsReplaceDefaults(t *testing.T) {
	c, err := New([]string{`^foo`}, false)
	require.NoError(t, err)
	require.Equal(t, []string{`^foo`}, c.Patterns())

	require.True(t, c.IsExcluded("foobar", ""))
	// Defaults are gone.
	require.False(t, c.IsExcluded("https://a.b/c", ""))
}

func TestNew_AppendKeepsDefaults(t *testing.T) {
	c, err := New([]string{`^foo`}, true)
	require.NoError(t, err)
	require.Len(t, c.Patterns(), len(DefaultExcludePatterns)+1)
	require.True(t, c.IsExcluded("foobar", ""))
	require.True(t, c.IsExcluded("https://a.b/c", ""))
}

func TestNew_BadPatternRejectedIndividually(t *testing.T) {
	c, err := New([]string{`^ok`, `([unclosed`, `^also`}, false)
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, `([unclosed`, perr.Pattern)
	require.Contains(t, err.Error(), "([unclosed")

	require.Equal(t, []string{`^ok`, `^also`}, c.Patterns())
	require.True(t, c.IsExcluded("also this", ""))
}

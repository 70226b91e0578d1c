// Package i18n translates arbkit's own CLI messages.
//
// Catalogs are gettext PO files embedded under locales/ and loaded by
// Init. T and N pass the message through unchanged when no catalog
// matches the user's language.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Directory structure: locales/{lang}/LC_MESSAGES/arbkit.po
//
//go:embed all:locales
var locales embed.FS

const domain = "arbkit"

var po *gotext.Locale

// EnvLang overrides the language for arbkit messages only.
const EnvLang = "ARBKIT_LANG"

// Init loads the catalog for lang, or for the language named by the
// environment when lang is empty. Call it once before T or N.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(normalize(lang), locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates msgid.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms using the catalog's plural rule.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage checks ARBKIT_LANG, then the gettext variables in their
// usual order. The first one naming a real locale wins.
func detectLanguage() string {
	for _, env := range []string{EnvLang, "LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		if val = normalize(val); val != "" && val != "C" && val != "POSIX" {
			return val
		}
	}
	return "en"
}

// normalize turns "ru_RU.UTF-8", "ru-RU" or "ru_RU@euro" into "ru_RU".
func normalize(lang string) string {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(lang), "-", "_")
}

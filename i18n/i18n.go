// Package i18n negotiates the response language and translates the short
// status messages returned alongside mutations.
package i18n

import (
	"golang.org/x/text/language"
)

const (
	English    = "en"
	Portuguese = "pt"

	CookieName = "lang"
)

var (
	supported = []language.Tag{language.English, language.Portuguese}
	matcher   = language.NewMatcher(supported)
)

// Supported reports whether locale is one of the served languages.
func Supported(locale string) bool {
	return locale == English || locale == Portuguese
}

// Resolve picks the locale for a request. An explicit cookie choice wins over
// the Accept-Language header; anything unrecognised falls back to English.
func Resolve(cookie, acceptLanguage string) string {
	if Supported(cookie) {
		return cookie
	}
	if acceptLanguage == "" {
		return English
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return English
	}
	base, _ := supported[index].Base()
	return base.String()
}

// T returns the message for key in locale, falling back to English and then
// to the key itself.
func T(locale, key string) string {
	if msg, ok := messages[locale][key]; ok {
		return msg
	}
	if msg, ok := messages[English][key]; ok {
		return msg
	}
	return key
}

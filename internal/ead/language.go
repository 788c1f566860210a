package ead

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a resolved language: ISO 639-3 code and English display name.
type Language struct {
	Code string
	Name string
}

// UnresolvedLanguageCodeError reports a language code with no known display
// name. It is not fatal: renderers fall back to the raw code.
type UnresolvedLanguageCodeError struct {
	Code string
	Err  error
}

func (e *UnresolvedLanguageCodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unresolved language code %q: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("unresolved language code %q", e.Code)
}

func (e *UnresolvedLanguageCodeError) Unwrap() error { return e.Err }

var englishNames = display.English.Languages()

// ResolveLanguage maps a BCP 47 or ISO 639 code to its three-letter code
// and English name. On failure the returned Language carries the raw code in
// both fields, together with an *UnresolvedLanguageCodeError.
func ResolveLanguage(code string) (Language, error) {
	raw := strings.TrimSpace(code)
	fallback := Language{Code: raw, Name: raw}

	tag, err := language.Parse(raw)
	if err != nil {
		return fallback, &UnresolvedLanguageCodeError{Code: code, Err: err}
	}
	base, conf := tag.Base()
	if conf == language.No {
		return fallback, &UnresolvedLanguageCodeError{Code: code}
	}
	name := englishNames.Name(tag)
	if name == "" {
		return fallback, &UnresolvedLanguageCodeError{Code: code}
	}
	iso3 := base.ISO3()
	if iso3 == "" {
		iso3 = raw
	}
	return Language{Code: iso3, Name: name}, nil
}

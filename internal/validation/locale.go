package validation

import (
	"fmt"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/language"
)

// NormalizeLocale canonicalises a BCP 47 tag ("EN" -> "en", "pt_br" -> "pt-BR").
// Empty input stays empty.
func NormalizeLocale(locale string) (string, error) {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return "", nil
	}

	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q", locale)
	}

	return tag.String(), nil
}

// Locale accepts empty values and well-formed language tags.
var Locale = ozzo.By(func(value any) error {
	v, isNil := ozzo.Indirect(value)
	if isNil {
		return nil
	}

	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("locale must be a string")
	}

	_, err := NormalizeLocale(s)
	return err
})

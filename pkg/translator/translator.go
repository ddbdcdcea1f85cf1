package translator

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

//go:embed translation/*.toml
var translations embed.FS

// Translator localizes message ids into the languages found under
// translation/.
type Translator struct {
	bundle *i18n.Bundle
}

func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(translations, "translation/*.toml")
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(translations, f); err != nil {
			return nil, fmt.Errorf("load translation %s: %w", f, err)
		}
	}

	return &Translator{bundle: bundle}, nil
}

// Localize returns the message for key in the best language matching
// acceptLanguage, or fallback when there is none.
func (t *Translator) Localize(acceptLanguage, key, fallback string) string {
	if t == nil || key == "" {
		return fallback
	}

	l := i18n.NewLocalizer(t.bundle, acceptLanguage, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		zap.L().Debug("translation not found", zap.String("lang", acceptLanguage), zap.String("message_id", key))
		return fallback
	}
	return msg
}

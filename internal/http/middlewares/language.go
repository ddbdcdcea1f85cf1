package middleware

import (
	"github.com/labstack/echo/v4"

	"taskboard.com/taskboard/pkg/translator"
)

const (
	langKey = "lang"

	HeaderAcceptLanguage = "Accept-Language"
)

// Language stores the raw Accept-Language header; the translator does the
// matching.
func Language() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.Request().Header.Get(HeaderAcceptLanguage)
			if lang == "" {
				lang = translator.LanguageEn
			}
			c.Set(langKey, lang)
			return next(c)
		}
	}
}

func GetLang(c echo.Context) string {
	if lang, ok := c.Get(langKey).(string); ok && lang != "" {
		return lang
	}
	return translator.LanguageEn
}

package service

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

const localesDir = "locales"

type Localizer struct {
	bundle      *i18n.Bundle
	localizer   *i18n.Localizer
	currentLang language.Tag
}

// NewLocalizer loads every embedded locale. Messages missing from
// currentLang fall back to English.
func NewLocalizer(currentLang string) (*Localizer, error) {
	lang, err := language.Parse(currentLang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", currentLang, err)
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := localeFS.ReadDir(localesDir)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".toml") {
			continue
		}

		data, err := localeFS.ReadFile(path.Join(localesDir, file.Name()))
		if err != nil {
			return nil, err
		}

		if _, err := bundle.ParseMessageFileBytes(data, file.Name()); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", file.Name(), err)
		}
	}

	return &Localizer{
		bundle:      bundle,
		localizer:   i18n.NewLocalizer(bundle, lang.String(), language.English.String()),
		currentLang: lang,
	}, nil
}

// Localize returns messageID itself when no translation exists.
func (s *Localizer) Localize(messageID string, data map[string]any) string {
	msg, err := s.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if msg == "" || err != nil && !isFallback(err) {
		return messageID
	}
	return msg
}

// isFallback reports a translation served from the default language.
func isFallback(err error) bool {
	var notFound *i18n.MessageNotFoundErr
	return errors.As(err, &notFound)
}

func (s *Localizer) Language() language.Tag {
	return s.currentLang
}

// Languages lists the tags with a bundled locale file.
func (s *Localizer) Languages() []string {
	tags := s.bundle.LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, t := range tags {
		langs = append(langs, t.String())
	}
	slices.Sort(langs)
	return langs
}

package translation

import (
	"context"

	"smart-pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Translator best-effort translation: dictionary first, then the provider, and the
// original text whenever the provider fails.
type Translator struct {
	client TextTranslator
	source string
}

// NewTranslator creates a Translator. source is the language sent to the provider,
// usually "auto".
func NewTranslator(client TextTranslator, source string) *Translator {
	return &Translator{
		client: client,
		source: source,
	}
}

// TranslateToTarget returns the translation of text into target and true, or text
// unchanged and false when the provider could not translate it. It never fails.
func (t *Translator) TranslateToTarget(ctx context.Context, text, target string) (string, bool) {
	if target == DictionaryLanguage {
		if translated, ok := Lookup(text); ok {
			common.LogDebug("Dictionary hit", zap.String("text", text), zap.String("translated", translated))
			return translated, true
		}
	}

	translated, err := t.client.Translate(ctx, text, t.source, target)
	if err != nil {
		common.LogWarn("Translation failed, keeping original text",
			zap.String("text", text),
			zap.String("target", target),
			zap.Error(err),
		)
		return text, false
	}

	return translated, true
}

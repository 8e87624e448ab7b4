package translation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"smart-pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// latinPattern matches text assumed to be in the target language already.
var latinPattern = regexp.MustCompile(`^[a-zA-Z\s-]+$`)

// Result normalized ingredients
type Result struct {
	Ingredients []string // same length and order as the input
	Fallbacks   []string // inputs left untranslated because the provider failed
}

// Normalizer translates ingredient lists into the target language
type Normalizer struct {
	translator  *Translator
	target      string
	concurrency int
}

// NewNormalizer creates a Normalizer. At most concurrency provider calls run at once.
func NewNormalizer(translator *Translator, target string, concurrency int) *Normalizer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Normalizer{
		translator:  translator,
		target:      target,
		concurrency: concurrency,
	}
}

// Normalize translates each ingredient, preserving order. Dictionary entries are mapped,
// latin-only entries pass through unchanged and the rest go to the provider. If anything
// escapes per-item handling the input is returned unchanged.
func (n *Normalizer) Normalize(ctx context.Context, ingredients []string) (result Result) {
	if len(ingredients) == 0 {
		return Result{Ingredients: []string{}}
	}

	defer func() {
		if r := recover(); r != nil {
			common.LogError("Ingredient normalization failed, using original ingredients",
				zap.Any("error", r),
				zap.Strings("ingredients", ingredients),
			)
			result = Result{Ingredients: append([]string(nil), ingredients...)}
		}
	}()

	out := make([]string, len(ingredients))
	failed := make([]bool, len(ingredients))

	var g errgroup.Group
	g.SetLimit(n.concurrency)

	for i, ingredient := range ingredients {
		clean := strings.ToLower(strings.TrimSpace(ingredient))

		if n.target == DictionaryLanguage {
			if translated, ok := Lookup(clean); ok {
				common.LogDebug("Ingredient found in dictionary",
					zap.String("ingredient", ingredient),
					zap.String("translated", translated),
				)
				out[i] = translated
				continue
			}
		}

		if latinPattern.MatchString(clean) {
			common.LogDebug("Ingredient assumed to be in target language", zap.String("ingredient", ingredient))
			out[i] = ingredient
			continue
		}

		i, ingredient := i, ingredient
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					out[i] = ingredient
					failed[i] = true
					err = fmt.Errorf("translate %q: %v", ingredient, r)
				}
			}()
			translated, ok := n.translator.TranslateToTarget(ctx, ingredient, n.target)
			out[i] = translated
			failed[i] = !ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		common.LogError("Ingredient translation panicked", zap.Error(err))
	}

	result.Ingredients = out
	for i, f := range failed {
		if f {
			result.Fallbacks = append(result.Fallbacks, ingredients[i])
		}
	}

	common.LogDebug("Ingredients normalized",
		zap.Strings("original", ingredients),
		zap.Strings("translated", out),
	)

	return result
}

package translation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmpty(t *testing.T) {
	client := &fakeClient{}
	n := NewNormalizer(NewTranslator(client, "auto"), "en", 4)

	result := n.Normalize(context.Background(), nil)
	assert.Empty(t, result.Ingredients)
	assert.NotNil(t, result.Ingredients)
	assert.Equal(t, int32(0), client.count.Load())
}

func TestNormalizePolicy(t *testing.T) {
	client := &fakeClient{answers: map[string]string{"jamur kuping!": "wood ear mushroom"}}
	n := NewNormalizer(NewTranslator(client, "auto"), "en", 2)

	input := []string{"Ayam", "green beans", "jamur kuping!", "bawang putih", "kale-leaf"}
	result := n.Normalize(context.Background(), input)

	assert.Equal(t, []string{"chicken", "green beans", "wood ear mushroom", "garlic", "kale-leaf"}, result.Ingredients)
	assert.Empty(t, result.Fallbacks)
	assert.Equal(t, []string{"jamur kuping!"}, client.calls)
}

func TestNormalizeNeverTranslatesLatinText(t *testing.T) {
	client := &fakeClient{}
	n := NewNormalizer(NewTranslator(client, "auto"), "en", 4)

	input := []string{"tempeh", "Soy Sauce", "kaffir-lime", "  basil  "}
	result := n.Normalize(context.Background(), input)

	assert.Equal(t, input, result.Ingredients)
	assert.Equal(t, int32(0), client.count.Load())
}

func TestNormalizePreservesOrderUnderConcurrency(t *testing.T) {
	// later items finish first
	client := &fakeClient{delay: func(text string) time.Duration {
		switch text {
		case "ä1":
			return 40 * time.Millisecond
		case "ä2":
			return 20 * time.Millisecond
		}
		return 0
	}}
	n := NewNormalizer(NewTranslator(client, "auto"), "en", 3)

	input := []string{"ä1", "ä2", "ä3", "telur", "ä4"}
	result := n.Normalize(context.Background(), input)

	assert.Len(t, result.Ingredients, len(input))
	assert.Equal(t, []string{"ä1-en", "ä2-en", "ä3-en", "egg", "ä4-en"}, result.Ingredients)
	assert.LessOrEqual(t, client.maxFlight.Load(), int32(3))
}

func TestNormalizeSequentialWithConcurrencyOne(t *testing.T) {
	client := &fakeClient{delay: func(string) time.Duration { return 5 * time.Millisecond }}
	n := NewNormalizer(NewTranslator(client, "auto"), "en", 1)

	n.Normalize(context.Background(), []string{"ä1", "ä2", "ä3"})
	assert.Equal(t, int32(1), client.maxFlight.Load())
	assert.Equal(t, []string{"ä1", "ä2", "ä3"}, client.calls)
}

func TestNormalizeFallsBackOnProviderFailure(t *testing.T) {
	client := &fakeClient{fail: true}
	n := NewNormalizer(NewTranslator(client, "auto"), "en", 4)

	input := []string{"ikan", "daun salam?", "kemangi!"}
	result := n.Normalize(context.Background(), input)

	assert.Equal(t, []string{"fish", "daun salam?", "kemangi!"}, result.Ingredients)
	assert.ElementsMatch(t, []string{"daun salam?", "kemangi!"}, result.Fallbacks)
}

type panicClient struct{}

func (panicClient) Translate(context.Context, string, string, string) (string, error) {
	panic("boom")
}

func TestNormalizeRecoversFromPanics(t *testing.T) {
	n := NewNormalizer(NewTranslator(panicClient{}, "auto"), "en", 2)

	input := []string{"sapi", "ü"}
	result := n.Normalize(context.Background(), input)

	assert.Equal(t, []string{"beef", "ü"}, result.Ingredients)
	assert.Equal(t, []string{"ü"}, result.Fallbacks)
}

package translation

import "strings"

// DictionaryLanguage is the language every dictionary entry translates into.
const DictionaryLanguage = "en"

// ingredientDictionary common Indonesian pantry ingredients
var ingredientDictionary = map[string]string{
	"ayam":         "chicken",
	"wortel":       "carrot",
	"bawang":       "onion",
	"bawang merah": "shallot",
	"bawang putih": "garlic",
	"tomat":        "tomato",
	"kentang":      "potato",
	"nasi":         "rice",
	"telur":        "egg",
	"sapi":         "beef",
	"ikan":         "fish",
	"cabai":        "chili",
	"merica":       "pepper",
	"garam":        "salt",
	"gula":         "sugar",
	"minyak":       "oil",
	"mentega":      "butter",
}

// Lookup returns the dictionary translation of word. Matching is exact after
// trimming and lowercasing.
func Lookup(word string) (string, bool) {
	translated, ok := ingredientDictionary[strings.ToLower(strings.TrimSpace(word))]
	return translated, ok
}

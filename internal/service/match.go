package service

import "strings"

// Matcher decides whether a recipe ingredient line is satisfied by an
// inventory item name. It is a pluggable strategy so tokenized or fuzzy
// matching can be swapped in later without touching the availability
// calculator.
type Matcher interface {
	Matches(recipeIngredient, inventoryName string) bool
}

// SubstringMatcher matches when the inventory name occurs, case-insensitively,
// anywhere inside the recipe ingredient text. "2 large eggs" is satisfied by
// "egg", but so is "100g eggplant" — a known false positive this matcher
// accepts in exchange for needing no ingredient dictionary.
type SubstringMatcher struct{}

// Matches reports whether inventoryName is a substring of recipeIngredient,
// ignoring case. Total on all inputs; the empty inventory name matches
// everything.
func (SubstringMatcher) Matches(recipeIngredient, inventoryName string) bool {
	return strings.Contains(strings.ToLower(recipeIngredient), strings.ToLower(inventoryName))
}

// Package normalize canonicalizes entity names and query terms for the
// AMD knowledge graph. All functions are pure; output is stable for a
// given synonym-table version.
package normalize

import (
	"regexp"
	"strings"
)

// synonyms maps domain short forms to their canonical long forms.
// Lookup is exact-match on the fully processed name.
var synonyms = map[string]string{
	"wet amd":                                   "wet age-related macular degeneration",
	"early amd":                                 "early age-related macular degeneration",
	"cnv":                                       "choroidal neovascularization",
	"amd":                                       "age-related macular degeneration",
	"wet age-related macular degeneration amd":  "wet age-related macular degeneration",
	"early age related macular degeneration amd": "early age-related macular degeneration",
	"wet armd": "wet age-related macular degeneration",
	"ga":       "geographic atrophy",
	"oct":      "optical coherence tomography",
	"pdt":      "photodynamic therapy",
	"pcv":      "polypoidal choroidal vasculopathy",
	"vma":      "vitreomacular adhesion",
	"me":       "macular edema",
	"namd":     "neovascular age-related macular degeneration",
	"neovascular amd": "neovascular age-related macular degeneration",
}

// trailingNoise lists bare acronyms that carry no meaning as the last
// word of a longer phrase.
var trailingNoise = map[string]bool{
	"cnv": true,
	"ga":  true,
}

// embeddedAcronyms are removed as whole words from phrases longer than
// two words; the surrounding phrase already carries the information.
var embeddedAcronyms = []*regexp.Regexp{
	regexp.MustCompile(`\bamd\b`),
	regexp.MustCompile(`\bcnv\b`),
}

var nonWord = regexp.MustCompile(`[\s\W]+`)

// Name canonicalizes an entity name: lowercase, collapsed whitespace,
// trailing-noise and embedded-acronym stripping for longer phrases, and
// a final exact-match synonym lookup. Empty input yields "".
func Name(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Join(strings.Fields(name), " ")

	words := strings.Fields(name)
	if len(words) > 2 {
		for len(words) > 0 && trailingNoise[words[len(words)-1]] {
			words = words[:len(words)-1]
		}
		name = strings.Join(words, " ")

		for _, re := range embeddedAcronyms {
			name = strings.TrimSpace(re.ReplaceAllString(name, ""))
		}
		name = strings.Join(strings.Fields(name), " ")
	}

	if canonical, ok := synonyms[name]; ok {
		return canonical
	}
	return name
}

// ExpandTerms rewrites each term word-by-word through the synonym
// table (case-insensitive). Term order and count are preserved 1:1.
func ExpandTerms(terms []string) []string {
	expanded := make([]string, len(terms))
	for i, term := range terms {
		words := strings.Fields(term)
		for j, w := range words {
			if canonical, ok := synonyms[strings.ToLower(w)]; ok {
				words[j] = canonical
			}
		}
		expanded[i] = strings.Join(words, " ")
	}
	return expanded
}

// Sanitize turns a name into a stable graph key: runs of whitespace and
// special characters become single underscores.
func Sanitize(name string) string {
	return strings.Trim(nonWord.ReplaceAllString(name, "_"), "_")
}

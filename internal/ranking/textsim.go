package ranking

import (
	"strings"

	"github.com/podscout/podscout/internal/core/domain"
)

const (
	titleContainBonus  = 0.8
	authorContainBonus = 0.6
	descContainBonus   = 0.4

	exactWeight   = 0.4
	jaccardWeight = 0.25
	ngramWeight   = 0.2
	fuzzyWeight   = 0.15

	ngramSize = 2
)

// TextSimilarity scores how well an item's text fields match the query,
// blending substring containment, word-set Jaccard, character bigram
// overlap, and a Levenshtein-based fuzzy ratio. Empty query or title
// short-circuits to zero. All comparisons are case-insensitive; diacritics
// are left untouched.
func TextSimilarity(query string, item domain.Item) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	title := strings.ToLower(strings.TrimSpace(item.Title))

	if query == "" || title == "" {
		return 0
	}

	author := strings.ToLower(item.Author)
	description := strings.ToLower(item.Description)

	var exact float64
	if strings.Contains(title, query) {
		exact += titleContainBonus
	}

	if author != "" && strings.Contains(author, query) {
		exact += authorContainBonus
	}

	if description != "" && strings.Contains(description, query) {
		exact += descContainBonus
	}

	score := exactWeight*exact +
		jaccardWeight*jaccardSimilarity(tokenSet(query), tokenSet(title)) +
		ngramWeight*ngramOverlap(query, title, ngramSize) +
		fuzzyWeight*fuzzyRatio(query, title)

	return clamp01(score)
}

// tokenSet splits on whitespace into a word set.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		set[word] = struct{}{}
	}

	return set
}

// jaccardSimilarity is |A∩B| / |A∪B| over word sets.
func jaccardSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0

	for word := range a {
		if _, ok := b[word]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

// ngramOverlap computes character n-gram overlap between the
// whitespace-stripped inputs: |∩| divided by the larger gram set.
func ngramOverlap(a, b string, n int) float64 {
	gramsA := ngrams(stripWhitespace(a), n)
	gramsB := ngrams(stripWhitespace(b), n)

	if len(gramsA) == 0 || len(gramsB) == 0 {
		return 0
	}

	intersection := 0

	for gram := range gramsA {
		if _, ok := gramsB[gram]; ok {
			intersection++
		}
	}

	larger := len(gramsA)
	if len(gramsB) > larger {
		larger = len(gramsB)
	}

	return float64(intersection) / float64(larger)
}

func ngrams(text string, n int) map[string]struct{} {
	runes := []rune(text)
	grams := make(map[string]struct{})

	for i := 0; i+n <= len(runes); i++ {
		grams[string(runes[i:i+n])] = struct{}{}
	}

	return grams
}

func stripWhitespace(text string) string {
	return strings.Join(strings.Fields(text), "")
}

// fuzzyRatio is 1 − levenshtein(a,b) / max(len(a),len(b)), in runes.
func fuzzyRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)

	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}

	if longer == 0 {
		return 0
	}

	return 1 - float64(levenshtein(ra, rb))/float64(longer)
}

// levenshtein computes edit distance with a two-row matrix.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}

	if c < m {
		m = c
	}

	return m
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}

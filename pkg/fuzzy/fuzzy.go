// Package fuzzy implements typo-tolerant matching and weighted relevance scoring
// used by the blog search.
package fuzzy

import (
	"strings"
	"unicode"
)

// Field is one searchable piece of text and how much a hit in it is worth.
type Field struct {
	Text   string
	Weight float64
}

// LevenshteinDistance counts the single-rune insertions, deletions and
// substitutions needed to turn s1 into s2, after normalization.
func LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(normalize(s1))
	r2 := []rune(normalize(s2))

	if len(r1) == 0 {
		return len(r2)
	}
	if len(r2) == 0 {
		return len(r1)
	}

	prev := make([]int, len(r2)+1)
	curr := make([]int, len(r2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= len(r2); j++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r2)]
}

// Threshold is the tolerated edit distance for a query of this length. Queries
// of three runes or fewer must match exactly.
func Threshold(query string) int {
	n := len([]rune(normalize(query)))
	switch {
	case n <= 3:
		return 0
	case n <= 5:
		return 1
	case n <= 7:
		return 2
	default:
		return 3
	}
}

// Score rates how relevant fields are to query. Zero means no hit. Typo hits
// count only within Threshold(query) edits of a word.
func Score(query string, fields ...Field) float64 {
	query = normalize(query)
	if query == "" {
		return 0
	}

	threshold := Threshold(query)
	score := 0.0
	for _, f := range fields {
		text := normalize(f.Text)
		if text == "" {
			continue
		}

		if strings.Contains(text, query) {
			score += f.Weight
			if containsWord(text, query) {
				score += f.Weight / 2
			}
			continue
		}

		// typo hits are worth less the further away they are
		for _, word := range strings.Fields(text) {
			if strings.HasPrefix(word, query) {
				score += f.Weight * 0.4
				continue
			}
			if threshold == 0 {
				continue
			}
			if dist := LevenshteinDistance(query, word); dist <= threshold {
				score += f.Weight * (0.5 - 0.15*float64(dist))
			}
		}
	}

	return score
}

// normalize lowercases, strips accents and collapses whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(removeAccents(strings.ToLower(s))), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}

// removeAccents drops nonspacing marks and folds precomposed Latin letters
// to their ASCII base.
func removeAccents(s string) string {
	var result strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'á', 'à', 'ả', 'ã', 'ạ', 'ă', 'ắ', 'ằ', 'ẳ', 'ẵ', 'ặ', 'â', 'ấ', 'ầ', 'ẩ', 'ẫ', 'ậ', 'ä', 'å':
			result.WriteRune('a')
		case 'é', 'è', 'ẻ', 'ẽ', 'ẹ', 'ê', 'ế', 'ề', 'ể', 'ễ', 'ệ', 'ë':
			result.WriteRune('e')
		case 'í', 'ì', 'ỉ', 'ĩ', 'ị', 'î', 'ï':
			result.WriteRune('i')
		case 'ó', 'ò', 'ỏ', 'õ', 'ọ', 'ô', 'ố', 'ồ', 'ổ', 'ỗ', 'ộ', 'ơ', 'ớ', 'ờ', 'ở', 'ỡ', 'ợ', 'ö':
			result.WriteRune('o')
		case 'ú', 'ù', 'ủ', 'ũ', 'ụ', 'ư', 'ứ', 'ừ', 'ử', 'ữ', 'ự', 'û', 'ü':
			result.WriteRune('u')
		case 'ý', 'ỳ', 'ỷ', 'ỹ', 'ỵ', 'ÿ':
			result.WriteRune('y')
		case 'đ':
			result.WriteRune('d')
		case 'ç':
			result.WriteRune('c')
		case 'ñ':
			result.WriteRune('n')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

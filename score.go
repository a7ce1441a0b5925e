package gendocsets

import "strings"

// Fuzzy matching limits. A needle character may not be farther than
// maxFuzzyDistance bytes from the previous match, and at most
// maxFuzzyGroups-1 gaps are tolerated.
const (
	maxFuzzyDistance = 8
	maxFuzzyGroups   = 3
)

// Score rates how well query matches a symbol name. Zero means no match.
// Exact substring matches score at least 100; fuzzy subsequence matches
// score between 1 and 99. Scope separators ("::", "/", "_", space) are treated
// like dots and matching is ASCII case-insensitive.
func Score(query, name string) int {
	needle := normalizeForScore(query)
	haystack := normalizeForScore(name)
	if needle == "" || haystack == "" {
		return 0
	}

	if i := strings.Index(haystack, needle); i != -1 {
		return scoreExact(i, len(needle), haystack) + 100
	}

	start, length := matchFuzzy(needle, haystack)
	if start == -1 {
		return 0
	}
	score := scoreFuzzy(haystack, start, length)

	// A match confined to the last name component is usually what the
	// user meant.
	if dot := strings.LastIndexByte(haystack, '.'); dot != -1 {
		leaf := haystack[dot+1:]
		if s, l := matchFuzzy(needle, leaf); s != -1 {
			score = max(score, scoreFuzzy(leaf, s, l))
		}
	}
	return score
}

func normalizeForScore(s string) string {
	b := []byte(s)
	out := make([]byte, len(b))
	for i, c := range b {
		switch {
		case i > 0 && b[i-1] == ':' && c == ':', c == '/', c == '_', c == ' ':
			out[i] = '.'
		case c >= 'A' && c <= 'Z':
			out[i] = c + 'a' - 'A'
		default:
			out[i] = c
		}
	}
	return string(out)
}

// scoreFuzzy scores a fuzzy match of length bytes at index in str.
func scoreFuzzy(str string, index, length int) int {
	// 66..100 if the match starts the string or follows a dot.
	if index == 0 || str[index-1] == '.' {
		return max(66, 100-length)
	}
	// 33..67 if the match ends the string.
	if index+length == len(str) {
		return max(33, 67-length)
	}
	// 1..34 for a match in the middle.
	return max(1, 34-length)
}

// matchFuzzy finds needle as a subsequence of haystack and returns the start
// and length of the best scoring span, or -1 if there is none.
func matchFuzzy(needle, haystack string) (int, int) {
	start, length := -1, 0
	groups := 0
	bestScore, bestStart, bestLength := -1, -1, 0

	j := 0
	for i := 0; i < len(needle); i++ {
		found := false
		first := true
		distance := 0

		for j < len(haystack) {
			c := haystack[j]
			j++
			if needle[i] == c {
				if start == -1 {
					start = j - 1

					// The first character may occur again later with a
					// tighter span.
					if rs, rl := matchFuzzy(needle, haystack[j:]); rs != -1 {
						rs += j
						if s := scoreFuzzy(haystack, rs, rl); s > bestScore {
							bestScore, bestStart, bestLength = s, rs, rl
						}
					}
				}
				length = j - start
				found = true
				break
			}

			if first {
				groups++
				if groups >= maxFuzzyGroups {
					break
				}
				first = false
			}

			if i != 0 {
				distance++
				if distance >= maxFuzzyDistance {
					break
				}
			}
		}

		if !found {
			if bestScore != -1 {
				return bestStart, bestLength
			}
			return -1, 0
		}
	}

	if bestScore > scoreFuzzy(haystack, start, length) {
		return bestStart, bestLength
	}
	return start, length
}

// scoreExact scores a substring match of matchLen bytes at matchIndex in value.
func scoreExact(matchIndex, matchLen int, value string) int {
	const dot = '.'
	valueLen := len(value)

	// One point off for each unmatched character.
	score := 100 - (valueLen - matchLen)

	if matchIndex > 0 {
		switch {
		case value[matchIndex-1] == dot:
			// Almost as good as a match at the start.
			score += matchIndex - 1
		case matchLen == 1:
			// A single character only matches at the start or after a dot.
			return 0
		default:
			i := matchIndex - 2
			for i >= 0 && value[i] != dot {
				i--
			}
			score -= (matchIndex - i) + (valueLen - matchLen - matchIndex)
		}

		// One point off per dot before the match, except the adjacent one.
		for i := matchIndex - 2; i >= 0; i-- {
			if value[i] == dot {
				score--
			}
		}
	}

	// Five points off per dot after the match.
	for i := valueLen - matchLen - matchIndex - 1; i >= 0; i-- {
		if value[matchIndex+matchLen+i] == dot {
			score -= 5
		}
	}

	return max(1, score)
}

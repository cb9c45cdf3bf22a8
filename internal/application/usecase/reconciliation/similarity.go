package reconciliation

import (
	"math"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// PartialRatio scores how well the shorter string matches somewhere inside
// the longer one, on a 0-100 scale. It slides an equal-length window of the
// longer string over the shorter and keeps the best Levenshtein ratio, so a
// verbatim substring scores 100 regardless of the surrounding text. The
// score is symmetric in argument order. Empty input scores 0.
func PartialRatio(a, b string) int {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}

	best := 0.0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		window := longer[start : start+len(shorter)]
		ratio := levenshtein.RatioForStrings(window, shorter, levenshtein.DefaultOptions)
		if ratio > best {
			best = ratio
		}
		if best == 1.0 {
			break
		}
	}

	return int(math.Round(best * 100))
}

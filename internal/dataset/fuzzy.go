package dataset

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Scores are integers in [0, 100].

var indelParams = levenshtein.NewParams().SubCost(2)

// normalize lowercases s, turns every non-alphanumeric rune into a space and
// trims the result.
func normalize(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(mapped)
}

func round(f float64) int {
	return int(math.Round(f))
}

// similarity is the normalized indel similarity of a and b in [0, 1].
func similarity(a, b string) float64 {
	lensum := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if lensum == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, indelParams)
	return float64(lensum-dist) / float64(lensum)
}

func ratio(a, b string) int {
	return round(100 * similarity(a, b))
}

// partialRatio scores the shorter string against windows of the longer one
// anchored at their matching blocks. Windows running past the end are
// truncated.
func partialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	shortStr := string(short)
	best := 0.0
	for _, blk := range matchingBlocks(short, long) {
		start := max(blk.j-blk.i, 0)
		end := min(start+len(short), len(long))
		s := similarity(shortStr, string(long[start:end]))
		if s > 0.995 {
			return 100
		}
		if s > best {
			best = s
		}
	}
	return round(100 * best)
}

// matchBlock says a[i:i+size] == b[j:j+size].
type matchBlock struct {
	i, j, size int
}

// matchingBlocks splits a and b around their longest common substring
// recursively, ending with the sentinel {len(a), len(b), 0}.
func matchingBlocks(a, b []rune) []matchBlock {
	var blocks []matchBlock
	queue := [][4]int{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		q := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b, q[0], q[1], q[2], q[3])
		if m.size == 0 {
			continue
		}
		blocks = append(blocks, m)
		if q[0] < m.i && q[2] < m.j {
			queue = append(queue, [4]int{q[0], m.i, q[2], m.j})
		}
		if m.i+m.size < q[1] && m.j+m.size < q[3] {
			queue = append(queue, [4]int{m.i + m.size, q[1], m.j + m.size, q[3]})
		}
	}

	sort.Slice(blocks, func(x, y int) bool {
		if blocks[x].i != blocks[y].i {
			return blocks[x].i < blocks[y].i
		}
		return blocks[x].j < blocks[y].j
	})
	return append(blocks, matchBlock{i: len(a), j: len(b)})
}

// longestMatch finds the longest common run of a[alo:ahi] and b[blo:bhi].
// Ties keep the smallest i, then the smallest j.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) matchBlock {
	best := matchBlock{i: alo, j: blo}
	prev := make([]int, bhi-blo+1)
	for i := alo; i < ahi; i++ {
		cur := make([]int, bhi-blo+1)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := prev[j-blo] + 1
			cur[j-blo+1] = k
			if k > best.size {
				best = matchBlock{i: i - k + 1, j: j - k + 1, size: k}
			}
		}
		prev = cur
	}
	return best
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSortRatio(a, b string, partial bool) int {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if partial {
		return partialRatio(sa, sb)
	}
	return ratio(sa, sb)
}

func tokenSetRatio(a, b string, partial bool) int {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range setB {
		if _, ok := setA[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	score := ratio
	if partial {
		score = partialRatio
	}
	return max(score(sect, combinedA), score(sect, combinedB), score(combinedA, combinedB))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

// WeightedRatio blends plain, partial and token based ratios of the
// normalized inputs, weighting partial matches down as the length gap grows.
func WeightedRatio(a, b string) int {
	p1, p2 := normalize(a), normalize(b)
	if p1 == "" || p2 == "" {
		return 0
	}

	const unbaseScale = 0.95
	partialScale := 0.90

	base := float64(ratio(p1, p2))

	l1, l2 := utf8.RuneCountInString(p1), utf8.RuneCountInString(p2)
	lenRatio := float64(max(l1, l2)) / float64(min(l1, l2))

	if lenRatio < 1.5 {
		tsor := float64(tokenSortRatio(p1, p2, false)) * unbaseScale
		tser := float64(tokenSetRatio(p1, p2, false)) * unbaseScale
		return round(max(base, tsor, tser))
	}

	if lenRatio > 8 {
		partialScale = 0.6
	}
	partial := float64(partialRatio(p1, p2)) * partialScale
	ptsor := float64(tokenSortRatio(p1, p2, true)) * unbaseScale * partialScale
	ptser := float64(tokenSetRatio(p1, p2, true)) * unbaseScale * partialScale
	return round(max(base, partial, ptsor, ptser))
}

// BestMatch returns the candidate scoring highest against query and its
// score. Ties keep the earliest candidate. ok is false for no candidates.
func BestMatch(query string, candidates []string) (match string, score int, ok bool) {
	best := -1
	for _, c := range candidates {
		if s := WeightedRatio(query, c); s > best {
			match, best = c, s
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return match, best, true
}

package lint

import "golang.org/x/text/unicode/norm"

// editDistance is the classic Wagner-Fischer dynamic-program, used to
// suggest a likely-intended known symbol for a misspelled one. Scripts'
// symbol tables are small (a handful of flags/consts per file), so the
// quadratic cost here never matters in practice.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			cur[j] = min3(del, ins, sub)
		}
		prev, cur = cur, prev
	}
	return prev[lb]
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

// closestSymbol returns the candidate closest to name by edit distance, if
// any candidate is within a small absolute threshold. Ties keep the first
// candidate in the order given; candidates gathered from the symbol
// table's maps come in no defined order.
func closestSymbol(name string, candidates []string) (string, bool) {
	normalizedName := norm.NFC.String(name)
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := editDistance(normalizedName, norm.NFC.String(c))
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 || bestDist > 2 {
		return "", false
	}
	return best, true
}

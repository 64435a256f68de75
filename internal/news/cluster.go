package news

import "strings"

// DefaultSimilarityThreshold is the ratio two articles must exceed to be
// considered the same story.
const DefaultSimilarityThreshold = 0.85

// Cluster is an insertion-ordered group of articles judged to report the
// same story. The first member is the cluster's representative.
type Cluster []NormalizedArticle

// Representative returns the first-discovered member of the cluster.
func (c Cluster) Representative() NormalizedArticle {
	return c[0]
}

// comparisonText is the string the similarity ratio operates on. It must
// be applied consistently to both sides of every comparison.
func comparisonText(a NormalizedArticle) string {
	return strings.ToLower(a.Title + " " + a.Summary)
}

// ClusterArticles partitions articles into story clusters with a single
// greedy pass: each article joins the first existing cluster whose
// representative text exceeds threshold, or opens a new one. Membership is
// decided once and never re-evaluated, so the grouping is deterministic
// for a given input order (and only for that order). Clusters come back in
// creation order with members in input order.
func ClusterArticles(articles []NormalizedArticle, threshold float64) []Cluster {
	var clusters []Cluster

	for _, art := range articles {
		text := comparisonText(art)
		placed := false

		for i, cluster := range clusters {
			if Ratio(text, comparisonText(cluster.Representative())) > threshold {
				clusters[i] = append(cluster, art)
				placed = true
				break
			}
		}

		if !placed {
			clusters = append(clusters, Cluster{art})
		}
	}

	return clusters
}

// Ratio computes a character-level similarity score in [0,1] between two
// strings: 2*M/T, where M is the total size of the longest matching
// blocks and T the combined length. Symmetric in its arguments; two empty
// strings rate 1.0.
func Ratio(a, b string) float64 {
	// Canonical operand order: block search prefers earliest matches in
	// its first argument, so fix an orientation to keep the score exactly
	// symmetric.
	if len(a) > len(b) || (len(a) == len(b) && a > b) {
		a, b = b, a
	}
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingTotal(ra, rb)) / float64(total)
}

// span is a pair of half-open windows [aLo,aHi) x [bLo,bHi) still to be
// searched for matching blocks.
type span struct {
	aLo, aHi, bLo, bHi int
}

// matchingTotal sums the lengths of the matching blocks found by
// repeatedly taking the longest match in a window and recursing into the
// pieces to its left and right.
func matchingTotal(a, b []rune) int {
	matched := 0
	queue := []span{{0, len(a), 0, len(b)}}

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, b, s)
		if size == 0 {
			continue
		}
		matched += size

		if s.aLo < i && s.bLo < j {
			queue = append(queue, span{s.aLo, i, s.bLo, j})
		}
		if i+size < s.aHi && j+size < s.bHi {
			queue = append(queue, span{i + size, s.aHi, j + size, s.bHi})
		}
	}

	return matched
}

// longestMatch finds the earliest longest common block of a and b inside
// the given window using the element-index map technique.
func longestMatch(a, b []rune, s span) (bestI, bestJ, bestSize int) {
	b2j := make(map[rune][]int, s.bHi-s.bLo)
	for j := s.bLo; j < s.bHi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}

	bestI, bestJ = s.aLo, s.bLo
	runLen := map[int]int{}
	for i := s.aLo; i < s.aHi; i++ {
		newRunLen := map[int]int{}
		for _, j := range b2j[a[i]] {
			k := runLen[j-1] + 1
			newRunLen[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		runLen = newRunLen
	}
	return bestI, bestJ, bestSize
}

package engine

import (
	"sort"
	"strings"
)

// changedSimilarityThreshold is the minimum bigram similarity for an
// added/removed pair of the same type to count as one changed entity.
const changedSimilarityThreshold = 0.5

// Comparator diffs the entity sets of two documents and measures their
// textual similarity.
type Comparator struct {
	extractor *Extractor
}

func NewComparator() *Comparator {
	return &Comparator{extractor: NewExtractor()}
}

// Compare extracts entities from both texts and reports the values added
// in B, removed from A, pairs that changed, and the Jaccard word-set
// similarity of the raw texts.
func (c *Comparator) Compare(textA, textB string) Comparison {
	entitiesA := c.extractor.Extract(textA)
	entitiesB := c.extractor.Extract(textB)

	added := entitiesNotIn(entitiesB, entitiesA)
	removed := entitiesNotIn(entitiesA, entitiesB)
	changed, added, removed := pairChangedEntities(added, removed)

	return Comparison{
		AddedEntities:   added,
		RemovedEntities: removed,
		ChangedEntities: changed,
		Similarity:      jaccardSimilarity(textA, textB),
	}
}

// entitiesNotIn returns entities from set whose value does not appear in
// reference.
func entitiesNotIn(set, reference []Entity) []Entity {
	refValues := make(map[string]struct{}, len(reference))
	for _, entity := range reference {
		refValues[entity.Value] = struct{}{}
	}
	var out []Entity
	for _, entity := range set {
		if _, ok := refValues[entity.Value]; !ok {
			out = append(out, entity)
		}
	}
	return out
}

// pairChangedEntities matches removed entities with added entities of the
// same type whose values are near-identical, greedily taking the best
// pair first. Matched entities leave the added/removed sets.
func pairChangedEntities(added, removed []Entity) ([]ChangedEntity, []Entity, []Entity) {
	type candidate struct {
		removedIdx int
		addedIdx   int
		score      float64
	}

	var candidates []candidate
	for ri, r := range removed {
		for ai, a := range added {
			if r.Type != a.Type {
				continue
			}
			score := bigramSimilarity(r.Value, a.Value)
			if score >= changedSimilarityThreshold {
				candidates = append(candidates, candidate{removedIdx: ri, addedIdx: ai, score: score})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	usedRemoved := make(map[int]bool)
	usedAdded := make(map[int]bool)
	var changed []ChangedEntity
	for _, c := range candidates {
		if usedRemoved[c.removedIdx] || usedAdded[c.addedIdx] {
			continue
		}
		usedRemoved[c.removedIdx] = true
		usedAdded[c.addedIdx] = true
		changed = append(changed, ChangedEntity{From: removed[c.removedIdx], To: added[c.addedIdx]})
	}

	var remainingAdded, remainingRemoved []Entity
	for i, entity := range added {
		if !usedAdded[i] {
			remainingAdded = append(remainingAdded, entity)
		}
	}
	for i, entity := range removed {
		if !usedRemoved[i] {
			remainingRemoved = append(remainingRemoved, entity)
		}
	}

	return changed, remainingAdded, remainingRemoved
}

// jaccardSimilarity computes |intersection| / |union| over lowercase
// whitespace-delimited word sets. Two empty texts compare as 0, not NaN.
func jaccardSimilarity(textA, textB string) float64 {
	wordsA := wordSet(textA)
	wordsB := wordSet(textB)

	union := make(map[string]struct{}, len(wordsA)+len(wordsB))
	for w := range wordsA {
		union[w] = struct{}{}
	}
	for w := range wordsB {
		union[w] = struct{}{}
	}
	if len(union) == 0 {
		return 0
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(len(union))
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// bigramSimilarity is the Dice coefficient over character bigrams of the
// lowercased values.
func bigramSimilarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	bigramsA := bigrams(a)
	bigramsB := bigrams(b)
	if len(bigramsA) == 0 || len(bigramsB) == 0 {
		return 0
	}

	counts := make(map[string]int, len(bigramsA))
	for _, bg := range bigramsA {
		counts[bg]++
	}
	overlap := 0
	for _, bg := range bigramsB {
		if counts[bg] > 0 {
			counts[bg]--
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(bigramsA)+len(bigramsB))
}

func bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}

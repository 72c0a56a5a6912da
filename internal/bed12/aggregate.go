package bed12

import (
	"fmt"
	"sort"
)

// SortExons stably sorts exons by (name, start). Aggregation depends on this
// order: blocks are emitted in the order their exons appear after the sort.
func SortExons(exons []Exon) {
	sort.SliceStable(exons, func(i, j int) bool {
		if exons[i].Name != exons[j].Name {
			return exons[i].Name < exons[j].Name
		}
		return exons[i].Start < exons[j].Start
	})
}

// GroupStable partitions items by key. Groups are returned in order of first
// appearance and items keep their relative order inside a group, so the
// caller must sort items beforehand if a particular order is required.
func GroupStable[T any, K comparable](items []T, key func(T) K) [][]T {
	index := make(map[K]int)
	var groups [][]T
	for _, it := range items {
		k := key(it)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], it)
	}
	return groups
}

type transcriptKey struct {
	name   string
	strand string
}

// Aggregate collapses exons into one transcript per name. When stranded is
// true the strand is part of the identity, so a name reported on both strands
// yields two transcripts. The input slice is not modified.
func Aggregate(exons []Exon, stranded bool) ([]Transcript, error) {
	sorted := make([]Exon, len(exons))
	copy(sorted, exons)
	SortExons(sorted)

	groups := GroupStable(sorted, func(e Exon) transcriptKey {
		k := transcriptKey{name: e.Name}
		if stranded {
			k.strand = e.Strand
		}
		return k
	})

	transcripts := make([]Transcript, 0, len(groups))
	for _, g := range groups {
		t, err := collapse(g)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, nil
}

// collapse builds a transcript from a non-empty, start-ordered exon group.
func collapse(group []Exon) (Transcript, error) {
	first := group[0]
	minStart, maxEnd := first.Start, first.End
	for _, e := range group[1:] {
		if e.Chrom != first.Chrom {
			return Transcript{}, &FormatError{
				Format:  "input",
				Message: fmt.Sprintf("transcript %q spans chromosomes %s and %s", first.Name, first.Chrom, e.Chrom),
			}
		}
		minStart = min(minStart, e.Start)
		maxEnd = max(maxEnd, e.End)
	}

	sizes := make([]int64, len(group))
	starts := make([]int64, len(group))
	for i, e := range group {
		sizes[i] = e.End - e.Start + 1
		// Offsets are taken against the 1-based minimum, before the
		// transcript start is shifted to 0-based below.
		starts[i] = e.Start - minStart
	}

	chromStart := minStart - 1
	strand := first.Strand
	if strand == "" {
		strand = StrandUnknown
	}

	return Transcript{
		Chrom:      first.Chrom,
		ChromStart: chromStart,
		ChromEnd:   maxEnd,
		Name:       first.Name,
		Score:      Score,
		Strand:     strand,
		// thickStart takes the transcript end and thickEnd the 0-based
		// start, so thickStart > thickEnd for any non-empty transcript.
		ThickStart:  maxEnd,
		ThickEnd:    chromStart,
		RGB:         RGB,
		BlockCount:  len(group),
		BlockSizes:  sizes,
		BlockStarts: starts,
	}, nil
}

// SortByName stably sorts transcripts by name.
func SortByName(ts []Transcript) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Name < ts[j].Name
	})
}

package bed12

// ExpandStrands replaces every transcript with an unknown strand by a plus
// and a minus copy named "<name>(+)" and "<name>(-)". Stranded transcripts are
// kept as they are. The result is stably sorted by name.
func ExpandStrands(ts []Transcript) []Transcript {
	out := make([]Transcript, 0, len(ts))
	var expanded []Transcript
	for _, t := range ts {
		if t.Strand != StrandUnknown && t.Strand != "" {
			out = append(out, t)
			continue
		}
		expanded = append(expanded,
			withStrand(t, StrandPlus),
			withStrand(t, StrandMinus),
		)
	}
	out = append(out, expanded...)
	SortByName(out)
	return out
}

func withStrand(t Transcript, strand string) Transcript {
	c := t
	c.Name = t.Name + "(" + strand + ")"
	c.Strand = strand
	c.BlockSizes = append([]int64(nil), t.BlockSizes...)
	c.BlockStarts = append([]int64(nil), t.BlockStarts...)
	return c
}

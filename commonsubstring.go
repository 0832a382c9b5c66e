package suffixtree

import "sort"

// CommonSubstring locates one shared substring of the indexed text and an
// external string.
type CommonSubstring struct {
	Length     int
	PosInText  int
	PosInOther int
}

type commonCandidate struct {
	posInOther int
	endInText  int
}

// LongestCommonSubstring streams other against the tree -- no generalized
// tree is built -- and returns the longest substring common to both. Ties
// return the first match encountered. O(|other|).
func (t *Tree) LongestCommonSubstring(other []byte) (string, error) {
	info, err := t.LongestCommonSubstringInfo(other)
	if err != nil || info.Length == 0 {
		return "", err
	}
	return string(other[info.PosInOther : info.PosInOther+info.Length]), nil
}

// LongestCommonSubstringString is LongestCommonSubstring for a string.
func (t *Tree) LongestCommonSubstringString(other string) (string, error) {
	return t.LongestCommonSubstring([]byte(other))
}

// LongestCommonSubstringInfo is LongestCommonSubstring plus the match
// positions in both strings.
func (t *Tree) LongestCommonSubstringInfo(other []byte) (CommonSubstring, error) {
	if err := t.ensureQueryable(); err != nil {
		return CommonSubstring{}, err
	}
	best, cands, err := t.commonSubstringScan(other, false)
	if err != nil || best == 0 {
		return CommonSubstring{}, err
	}
	first := cands[0]
	return CommonSubstring{
		Length:     best,
		PosInText:  first.endInText - best,
		PosInOther: first.posInOther,
	}, nil
}

// FindAllLongestCommonSubstrings returns every maximal-length common
// substring match: for each position in other achieving the maximum, every
// occurrence position in the text.
func (t *Tree) FindAllLongestCommonSubstrings(other []byte) ([]CommonSubstring, error) {
	if err := t.ensureQueryable(); err != nil {
		return nil, err
	}
	best, cands, err := t.commonSubstringScan(other, true)
	if err != nil || best == 0 {
		return nil, err
	}

	seen := make(map[[2]int]bool)
	var out []CommonSubstring
	for _, cand := range cands {
		occs, err := t.FindAllOccurrences(other[cand.posInOther : cand.posInOther+best])
		if err != nil {
			return nil, err
		}
		for _, p := range occs {
			key := [2]int{p, cand.posInOther}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, CommonSubstring{Length: best, PosInText: p, PosInOther: cand.posInOther})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PosInText != out[j].PosInText {
			return out[i].PosInText < out[j].PosInText
		}
		return out[i].PosInOther < out[j].PosInOther
	})
	return out, nil
}

// commonSubstringScan runs the sliding match window over other, tracking the
// best length seen. With all set it keeps every candidate achieving the
// best; otherwise just the first.
func (t *Tree) commonSubstringScan(other []byte, all bool) (int, []commonCandidate, error) {
	w, err := t.newMatchWindow()
	if err != nil {
		return 0, nil, err
	}

	best := 0
	var cands []commonCandidate
	for j := range other {
		c := int(other[j])
		for {
			ok, err := w.extend(c)
			if err != nil {
				return 0, nil, err
			}
			if ok {
				break
			}
			if w.length == 0 {
				break
			}
			if err := w.shrink(); err != nil {
				return 0, nil, err
			}
		}
		if w.length > best {
			best = w.length
			cands = cands[:0]
		}
		if w.length == best && best > 0 && (all || len(cands) == 0) {
			cands = append(cands, commonCandidate{
				posInOther: j + 1 - w.length,
				endInText:  w.textEndPos(),
			})
		}
	}
	return best, cands, nil
}

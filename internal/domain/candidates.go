package domain

// SingleCandidates lists the descriptors that could pair with t toward a
// combination: the same value in every other color (color order), then the
// next higher and next lower value of the same color when in range.
func SingleCandidates(t *Tile) []Descriptor {
	out := make([]Descriptor, 0, NumColors+1)
	for c := ColorYellow; c < NumColors; c++ {
		if c != t.Color {
			out = append(out, DescriptorOf(c, t.Value))
		}
	}
	if t.Value < MaxValue {
		out = append(out, DescriptorOf(t.Color, t.Value+1))
	}
	if t.Value > MinValue {
		out = append(out, DescriptorOf(t.Color, t.Value-1))
	}
	return out
}

// NewPair builds the 2-tile combination formed by a and b: a Run when they
// share a color, a Book otherwise.
func NewPair(a, b *Tile) (Combination, error) {
	if a.Color == b.Color {
		return NewRun(a, b)
	}
	return NewBook(a, b)
}

// PairCandidates returns the descriptors that would complete the pair (a, b)
// into a 3-tile combination.
func PairCandidates(a, b *Tile) ([]Descriptor, error) {
	pair, err := NewPair(a, b)
	if err != nil {
		return nil, err
	}
	return pair.Candidates(), nil
}

// RemoteCandidates reports whether a and b could still end up in one
// combination through a third tile: same color one or two apart, or same value
// in different colors.
func RemoteCandidates(a, b *Tile) bool {
	if a.Color == b.Color {
		d := a.Value - b.Value
		if d < 0 {
			d = -d
		}
		return d == 1 || d == 2
	}
	return a.Value == b.Value
}

// ContainsDescriptor reports whether d is in ds.
func ContainsDescriptor(ds []Descriptor, d Descriptor) bool {
	for _, x := range ds {
		if x == d {
			return true
		}
	}
	return false
}

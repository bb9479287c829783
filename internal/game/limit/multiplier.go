package limit

// MultiplierTable maps equipment item IDs to additive offsets on the base
// 1.0 gain multiplier. Items absent from the table contribute nothing.
type MultiplierTable map[int]float64

// For returns the effective gain multiplier for the given equipped item IDs:
// 1.0 plus the offset of each equipped item found in the table, floored at
// 0.0. Empty slots (id <= 0) are skipped.
//
// Postcondition: Returns a value >= 0.0.
func (t MultiplierTable) For(equipped []int) float64 {
	m := 1.0
	for _, id := range equipped {
		if id <= 0 {
			continue
		}
		if off, ok := t[id]; ok {
			m += off
		}
	}
	if m < 0 {
		return 0
	}
	return m
}

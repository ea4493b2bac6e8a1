package domain

// Filter narrows an already-valid transaction set. Nil bounds mean "no
// bound"; an explicit zero is honored as a real bound.
type Filter struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// HasAmountBound reports whether either amount bound is set.
func (f Filter) HasAmountBound() bool {
	return f.MinAmount != nil || f.MaxAmount != nil
}

// ValidationSummary describes one validate-and-filter pass.
type ValidationSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}

// FilterOverview is the read-only side channel for filter-selection UIs:
// the distinct regions among structurally valid records (pre-filter) and
// the amount range among records with positive quantity and price.
type FilterOverview struct {
	Regions   []string // sorted
	MinAmount float64
	MaxAmount float64
}

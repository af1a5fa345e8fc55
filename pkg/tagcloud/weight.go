package tagcloud

// weightResolver fixes the weight source for a run.
type weightResolver struct {
	useProperty bool
	column      int
}

func newWeightResolver(cfg Config, b binding) *weightResolver {
	return &weightResolver{useProperty: cfg.UseSizeProperty, column: b.size}
}

// resolve returns the raw weight of row, or false when the size cell is
// missing or not numeric. Weights are neither clamped nor rounded.
func (r *weightResolver) resolve(row Row) (float64, bool) {
	if r.useProperty {
		return row.Size(), true
	}
	return row.Cell(r.column).Float()
}

// ResolveWeight resolves the weight of a single row after validating cfg
// against schema.
func ResolveWeight(row Row, cfg Config, schema Schema) (float64, bool, error) {
	b, err := cfg.bind(schema)
	if err != nil {
		return 0, false, err
	}
	w, ok := newWeightResolver(cfg, b).resolve(row)
	return w, ok, nil
}

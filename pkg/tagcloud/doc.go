// Package tagcloud aggregates tabular rows into the ranked, weighted labels of
// a tag cloud.
//
// # Overview
//
// Every row contributes a label and a weight. Rows whose labels share an
// identity fold into a single [Entry] that accumulates the weights and the
// contributing row ids. Entries are then ranked by descending weight and
// clipped to a maximum count:
//
//	rows → missing-row policy → label & weight resolution → fold → rank → clip
//
// The package does not render anything; it returns the facts a renderer (or a
// caller emitting warnings) needs.
//
// # Labels
//
// The label source is chosen by [Config]:
//
//   - UseRowID: the row identifier is both key and display text.
//   - LabelColumn: the string form of the column's cell.
//   - TermMode: if a [TermCapability] is installed and supports the label
//     column's type, cells are read as terms (text, words, tags). With
//     IgnoreTermTags, terms with the same words fold together whatever their
//     tags; otherwise the tags are part of the identity. A cell the capability
//     cannot read falls back to its plain string.
//
// Identities are [LabelKey] values compared structurally. Term word lists are
// order-sensitive; tag sets are not.
//
// # Weights
//
// The weight is either the row-level size property or a numeric column.
// Missing or non-numeric cells skip the row. Weights are summed as-is.
//
// # Missing rows
//
// A row whose label or weight is missing is skipped and counted in
// [Stats].MissingCount. Skipped rows never contribute to an entry.
//
// # Ordering
//
// [RankAndClip] uses a stable sort on descending weight, so ties keep the
// order in which their labels were first seen. Running twice over the same
// rows with the same configuration yields the same order.
//
// # Cancellation
//
// [Run] checks its context every [DefaultCheckInterval] rows (see
// [WithCheckInterval]) and returns an error wrapping [ErrCancelled] when the
// context is done. Partial aggregation is discarded.
//
// # Usage
//
//	cfg := tagcloud.DefaultConfig()
//	cfg.LabelColumn = "word"
//	cfg.SizeColumn = "count"
//
//	res, err := tagcloud.Run(ctx, src, cfg, tagcloud.WithTermCapability(term.Capability{}))
//	if err != nil {
//	    return err
//	}
//	if res.Stats.MissingCount > 0 {
//	    log.Warnf("%d rows omitted", res.Stats.MissingCount)
//	}
//
// # Concurrency
//
// A run is synchronous and owns all of its state. Different runs may execute
// concurrently as long as they do not share a [RowSource].
package tagcloud

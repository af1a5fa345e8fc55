// Package pkg provides the libraries behind tagcloud.
//
// # Overview
//
// Tagcloud turns a table of labelled, weighted rows into the ranked entries
// of a tag cloud. The pkg directory is organised as follows:
//
//  1. [tagcloud] - the engine: label identity, weights, aggregation, ranking
//  2. [term] - structured terms (words plus tags) for term-typed columns
//  3. [table] - row sources read from CSV, TSV and JSON
//  4. [pipeline] - orchestration (read → aggregate → cache)
//  5. [cache], [storage] - result caching and stored runs
//  6. [observability], [errors], [buildinfo] - shared infrastructure
//
// # Architecture
//
//	CSV / TSV / JSON table
//	         ↓
//	    [table] package (rows and schema)
//	         ↓
//	    [tagcloud] package (fold rows by label, rank, clip)
//	         ↓
//	    ranked entries + stats (CLI table, JSON, HTTP API)
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.LabelColumn = "word"
//	opts.SizeColumn = "count"
//	result, err := runner.ExecuteFile(ctx, "words.csv", opts)
package pkg

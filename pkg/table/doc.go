// Package table provides in-memory tables and the CSV and JSON readers that
// feed them to the tag cloud engine.
//
// # Tables
//
// A [Table] is a [tagcloud.Schema] plus a slice of [Record] values. Each record
// carries a row id, its cells and the optional row-level size and colour
// properties. [Table.Source] returns a [tagcloud.RowSource] over the records.
//
// # CSV
//
// [ReadCSV] reads a header row followed by data rows:
//
//	id,word,count,weight,color
//	r0,cat,3,1.5,#ff0000
//	r1,dog,2,0.5,#00ff00
//
// The columns named in [CSVOptions] for the row id, row size and row colour are
// lifted out of the cells into record properties. Empty cells and cells equal
// to the missing token are missing. A column whose present cells all parse as
// numbers becomes a number column; columns listed as term columns hold
// text[TAG,...] strings.
//
// # JSON
//
// [ReadJSON] reads the column layout explicitly:
//
//	{
//	  "columns": [{"name": "term", "type": "term"}, {"name": "count", "type": "number"}],
//	  "rows": [
//	    {"id": "r0", "cells": ["go[VB]", 3]},
//	    {"id": "r1", "cells": [{"text": "go", "tags": ["NN"]}, null], "size": 2, "color": "#336699"}
//	  ]
//	}
//
// null cells are missing. Term cells may be strings or {"text", "tags"} objects.
package table

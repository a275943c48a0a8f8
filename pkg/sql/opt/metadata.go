// Copyright 2026 The Beam Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// included in the /LICENSE file.

package opt

import (
	"github.com/cockroachdb/errors"
	"github.com/danielarn/beam/pkg/sql/opt/cat"
)

// TableID uniquely identifies the usage of a table within the scope of a
// query. TableID 0 is reserved to mean "unknown table". The same catalog
// table can be added to the metadata twice (e.g. for a self-union) and each
// usage gets its own TableID.
type TableID uint64

// index returns the index of the table in Metadata.tables. It's biased by 1,
// so that TableID 0 can be reserved to mean "unknown table".
func (t TableID) index() int {
	return int(t - 1)
}

// makeTableID constructs a new TableID from the table's index.
func makeTableID(index int) TableID {
	// Bias the table index by 1.
	return TableID(index + 1)
}

// TableAnnID uniquely identifies an annotation on an instance of table
// metadata. A table annotation allows arbitrary values to be cached with
// table metadata, which can be used to avoid recalculating base table
// properties each time they're needed.
//
// To create a TableAnnID, call NewTableAnnID during Go's program
// initialization phase. The returned TableAnnID never clashes with other
// annotations on the same table. Here is a usage example:
//
//	var myAnnID = NewTableAnnID()
//
//	md.SetTableAnnotation(TableID(1), myAnnID, "foo")
//	ann := md.TableAnnotation(TableID(1), myAnnID)
//
// Currently, the following annotations are in use:
//   - Stats: the base statistics snapshot taken from the source, valid for
//     the duration of one optimization pass.
//
// To add an additional annotation, increase the value of maxTableAnnIDCount
// and add a call to NewTableAnnID.
type TableAnnID int

// tableAnnIDCount counts the number of times NewTableAnnID is called.
var tableAnnIDCount TableAnnID

// maxTableAnnIDCount is the maximum number of times NewTableAnnID can be
// called.
const maxTableAnnIDCount = 1

// NewTableAnnID allocates a unique annotation identifier that is used to
// associate arbitrary data with table metadata. It must only be called during
// Go's program initialization phase.
func NewTableAnnID() TableAnnID {
	if tableAnnIDCount == maxTableAnnIDCount {
		panic(errors.AssertionFailedf(
			"can't allocate table annotation id; increase maxTableAnnIDCount to allow"))
	}
	cnt := tableAnnIDCount
	tableAnnIDCount++
	return cnt
}

// TableMeta stores information about one of the tables stored in the
// metadata.
type TableMeta struct {
	// MetaID is the identifier for this table that is unique within the query
	// metadata.
	MetaID TableID

	// Table is a reference to the table in the catalog.
	Table cat.Table

	// anns annotates the table metadata with arbitrary data.
	anns [maxTableAnnIDCount]interface{}
}

// Metadata assigns unique ids to the tables used within the scope of a
// particular query plan. Ids are sturdier than names: multiple usages of the
// same table in a self-union each get their own id, and renames cannot
// confuse them. Metadata also hosts per-pass annotation caches keyed by those
// ids, such as the base-statistics snapshot taken for each scanned table.
type Metadata struct {
	tables []TableMeta
}

// Init prepares the metadata for use (or reuse).
func (md *Metadata) Init() {
	md.tables = md.tables[:0]
}

// AddTable indexes a new reference to a table within the query. Separate
// references to the same table are assigned different table ids.
func (md *Metadata) AddTable(tab cat.Table) TableID {
	if tab == nil {
		panic(errors.AssertionFailedf("adding nil table to metadata"))
	}
	tabID := makeTableID(len(md.tables))
	md.tables = append(md.tables, TableMeta{MetaID: tabID, Table: tab})
	return tabID
}

// TableMeta looks up the metadata for the table associated with the given
// table id. The same table can be added multiple times to the query metadata
// and associated with multiple table ids.
func (md *Metadata) TableMeta(tabID TableID) *TableMeta {
	if tabID == 0 || tabID.index() >= len(md.tables) {
		panic(errors.AssertionFailedf("table id %d not found in metadata", tabID))
	}
	return &md.tables[tabID.index()]
}

// Table looks up the catalog table associated with the given metadata id.
func (md *Metadata) Table(tabID TableID) cat.Table {
	return md.TableMeta(tabID).Table
}

// NumTables returns the number of tables registered in the metadata.
func (md *Metadata) NumTables() int {
	return len(md.tables)
}

// TableAnnotation returns the given annotation that is associated with the
// given table. If the table has no such annotation, TableAnnotation returns
// nil.
func (md *Metadata) TableAnnotation(tabID TableID, annID TableAnnID) interface{} {
	return md.TableMeta(tabID).anns[annID]
}

// SetTableAnnotation associates the given annotation with the given table.
// The annotation is associated by the given ID, which was allocated by
// calling NewTableAnnID. If an annotation with the ID already exists on the
// table, then it is overwritten.
func (md *Metadata) SetTableAnnotation(tabID TableID, annID TableAnnID, ann interface{}) {
	md.TableMeta(tabID).anns[annID] = ann
}

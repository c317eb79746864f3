package table

import (
	"github.com/iwahq/numbers/internal/memo"
	"github.com/iwahq/numbers/messages"
)

// Sheet is one sheet (tab) of a document: a display name and an ordered
// set of tables.
type Sheet struct {
	doc  *Document
	id   uint64
	info *messages.SheetInfo

	tablesCache *memo.Cache[struct{}, tablesResult]
}

type tablesResult struct {
	tables []*Table
	err    error
}

// Name returns the sheet's display name.
func (s *Sheet) Name() string { return s.info.Name }

// Tables returns every table on the sheet, decoding each on first access
// and memoizing the result for subsequent calls (spec.md §5).
func (s *Sheet) Tables() ([]*Table, error) {
	if s.tablesCache == nil {
		s.tablesCache = memo.New[struct{}, tablesResult]()
	}

	r := s.tablesCache.GetOrCompute(struct{}{}, func() tablesResult {
		tables := make([]*Table, 0, len(s.info.TableInfoIDs))

		for _, tid := range s.info.TableInfoIDs {
			t, err := newTable(s.doc, s, tid)
			if err != nil {
				return tablesResult{err: err}
			}
			tables = append(tables, t)
		}

		return tablesResult{tables: tables}
	})

	return r.tables, r.err
}

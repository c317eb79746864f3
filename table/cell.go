package table

import (
	"fmt"
	"time"

	"github.com/iwahq/numbers/cellstorage"
	"github.com/iwahq/numbers/customformat"
	"github.com/iwahq/numbers/format"
	"github.com/iwahq/numbers/formula"
	"github.com/iwahq/numbers/messages"
)

// epoch is the zero point cell-storage DATE values are stored as seconds
// since (spec.md §4.7 step on DATE; constants.py's EPOCH).
var epoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// Cell is one decoded table cell: its raw value, plus lazily-rendered
// formatted text, formula text, and merge geometry.
type Cell struct {
	table  *Table
	row    int
	col    int
	record *cellstorage.Record

	rowSpan, colSpan int
	mergedInto       *[2]int // set when this cell is covered by another cell's merge anchor
}

// Row returns the cell's zero-indexed row.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's zero-indexed column.
func (c *Cell) Col() int { return c.col }

// Type reports the cell's semantic kind (spec.md §4.7).
func (c *Cell) Type() format.CellType {
	if c.record == nil {
		return format.CellEmpty
	}
	return c.record.Type
}

// IsMergeAnchor reports whether this cell is the top-left anchor of a
// merged range with more than one cell.
func (c *Cell) IsMergeAnchor() bool {
	return c.mergedInto == nil && (c.rowSpan > 1 || c.colSpan > 1)
}

// Size returns (rowSpan, colSpan); both are 1 for an unmerged cell.
func (c *Cell) Size() (int, int) { return c.rowSpan, c.colSpan }

// MergeRange returns the A1-style range string of the merge this cell
// belongs to, and whether it belongs to one at all.
func (c *Cell) MergeRange() (string, bool) {
	if c.mergedInto != nil {
		anchor, err := c.table.Cell(c.mergedInto[0], c.mergedInto[1])
		if err != nil {
			return "", false
		}
		return anchor.MergeRange()
	}

	if c.rowSpan <= 1 && c.colSpan <= 1 {
		return "", false
	}

	return RangeString(c.row, c.col, c.row+c.rowSpan-1, c.col+c.colSpan-1), true
}

// Value returns the cell's raw decoded value: nil for an empty cell,
// float64 for NUMBER, string for TEXT/RICH_TEXT, bool for BOOL, a
// time.Time (UTC) for DATE, and a time.Duration for DURATION.
func (c *Cell) Value() any {
	if c.record == nil {
		return nil
	}

	switch c.record.Type {
	case format.CellNumber:
		if c.record.HasDecimal128 {
			return c.record.Decimal128
		}
		return c.record.Double
	case format.CellText, format.CellRichText:
		return c.record.Text
	case format.CellBool:
		return c.record.Double != 0
	case format.CellDate:
		return epoch.Add(time.Duration(c.record.Seconds * float64(time.Second)))
	case format.CellDuration:
		return time.Duration(c.record.Double * float64(time.Second))
	default:
		return nil
	}
}

// FormattedValue renders the cell's value through its resolved format
// record (spec.md §4.8), falling back to a plain textual rendering of
// Value() when no format is attached.
func (c *Cell) FormattedValue() string {
	if c.record == nil {
		return ""
	}

	switch c.record.Type {
	case format.CellNumber:
		return c.formattedNumber()
	case format.CellDate:
		return c.formattedDate()
	case format.CellDuration:
		return c.formattedDuration()
	case format.CellText, format.CellRichText:
		return c.formattedText()
	case format.CellBool:
		if c.record.Double != 0 {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", c.Value())
	}
}

func (c *Cell) resolveFormat(id int32) *messages.Format {
	if id == 0 || c.table.formats == nil {
		return nil
	}
	e, ok := c.table.formats.ByKey(id)
	if !ok {
		return nil
	}
	var f messages.Format
	if err := f.Unmarshal(e.Payload); err != nil {
		return nil
	}
	return &f
}

func (c *Cell) formattedNumber() string {
	f := c.resolveFormat(c.record.NumFormatID)
	if f == nil {
		f = c.resolveFormat(c.record.CurrencyFormatID)
	}
	if f == nil {
		return fmt.Sprintf("%v", c.Value())
	}

	value, _ := c.Value().(float64)

	switch f.FormatType {
	case format.FormatFraction:
		if f.FractionAccuracy > 0 {
			return customformat.RenderFixedFraction(value, int(f.FractionAccuracy))
		}
		return customformat.RenderAccuracyFraction(value, -int(f.FractionAccuracy))
	default:
		return customformat.RenderNumber(value, customformat.NumberFormat{
			CustomFormatString:       f.CustomFormatString,
			ScaleFactor:              f.ScaleFactor,
			CurrencyCode:             f.CurrencyCode,
			NumNonspaceIntegerDigits: int(f.NumNonspaceIntegerDigits),
			NumNonspaceDecimalDigits: int(f.NumNonspaceDecimalDigits),
			ShowThousandsSeparator:   f.ShowThousandsSeparator,
		})
	}
}

func (c *Cell) formattedDate() string {
	t, _ := c.Value().(time.Time)
	f := c.resolveFormat(c.record.DateFormatID)
	if f == nil || f.DateTimeFormat == "" {
		return t.Format("2006-01-02 15:04:05")
	}
	return customformat.RenderDate(f.DateTimeFormat, t)
}

func (c *Cell) formattedDuration() string {
	seconds := c.record.Double
	f := c.resolveFormat(c.record.DurationFormatID)
	if f == nil {
		return fmt.Sprintf("%gs", seconds)
	}
	return customformat.RenderDuration(seconds, customformat.DurationFormat{
		Style:             f.DurationStyle,
		UnitLargest:       int(f.DurationUnitLargest),
		UnitSmallest:      int(f.DurationUnitSmallest),
		UseAutomaticUnits: f.DurationUseAutomaticUnits,
	})
}

func (c *Cell) formattedText() string {
	f := c.resolveFormat(c.record.TextFormatID)
	if f == nil || f.CustomFormatString == "" {
		return c.record.Text
	}
	return customformat.RenderText(f.CustomFormatString, c.record.Text)
}

// Formula returns the cell's formula text (with a leading "="), and
// whether the cell carries a formula at all.
func (c *Cell) Formula() (string, bool) {
	if c.table.calc == nil || c.table.formula == nil {
		return "", false
	}

	ref, ok := c.table.calc.ResolveCell(int32(c.row), int32(c.col))
	if !ok {
		return "", false
	}

	entry, ok := c.table.formula.ByKey(ref.ASTKey)
	if !ok {
		return "", false
	}

	var arr messages.ASTNodeArray
	if err := arr.Unmarshal(entry.Payload); err != nil {
		return "", false
	}

	nodes := make([]formula.Node, len(arr.Nodes))
	for i, n := range arr.Nodes {
		// Cell-reference/colon-tract offsets are stored relative to the
		// formula's own cell (mirroring Build's row/col subtraction), so
		// rendering needs to add them back to get an absolute A1 address.
		row, col := int(n.Row), int(n.Col)
		rowEnd, colEnd := int(n.RowEnd), int(n.ColEnd)
		if n.Kind == format.NodeCellReference || n.Kind == format.NodeColonTract {
			if !n.RowAbsolute {
				row += c.row
			}
			if !n.ColAbsolute {
				col += c.col
			}
			if n.Kind == format.NodeColonTract {
				if !n.RowEndAbsolute {
					rowEnd += c.row
				}
				if !n.ColEndAbsolute {
					colEnd += c.col
				}
			}
		}

		nodes[i] = formula.Node{
			Kind:           n.Kind,
			Number:         n.Number,
			Text:           n.Text,
			Boolean:        n.Boolean,
			FunctionIndex:  int(n.FunctionIndex),
			NumArgs:        int(n.NumArgs),
			Row:            row,
			Col:            col,
			RowAbsolute:    n.RowAbsolute,
			ColAbsolute:    n.ColAbsolute,
			RowEnd:         rowEnd,
			ColEnd:         colEnd,
			RowEndAbsolute: n.RowEndAbsolute,
			ColEndAbsolute: n.ColEndAbsolute,
			IsRange:        n.IsRange,
			TableUID:       n.TableUID,
		}
	}

	coord := fmt.Sprintf("%s::%s@[%d,%d]", c.table.sheet.Name(), c.table.Name(), c.row, c.col)
	rendered := formula.Render(nodes, c.table.calc.OwnerUID, functionName, c.table.doc, c.table.diag, coord)

	return "=" + rendered, true
}

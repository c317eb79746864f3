// Package customformat renders a cell's raw value into its user-visible
// formatted string, given the cell's format record: date/time field codes,
// duration unit selection, fraction reduction, and custom number padding.
//
// Grounded on cell_storage.py's decode_date_format, duration_format,
// float_to_fraction/float_to_n_digit_fraction, and decode_number_format.
package customformat

import "github.com/iwahq/numbers/format"

// Padding mirrors cell_storage.py's CellPadding enum: whether a template
// side pads with zeros, spaces, or not at all.
type Padding = format.CellPadding

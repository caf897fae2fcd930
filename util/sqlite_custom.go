package util

import (
	"database/sql/driver"
	"fmt"
	"slices"
	"strings"

	"modernc.org/sqlite"
)

// SortedConcatenate is a sqlite aggregate joining string values in
// sorted order, used to collect genre names per book.
type SortedConcatenate struct {
	ans []string
	sep string
}

func NewSortedConcatenate(sep string) *SortedConcatenate {
	return &SortedConcatenate{ans: []string{}, sep: sep}
}

func (sc *SortedConcatenate) Step(ctx *sqlite.FunctionContext, rowArgs []driver.Value) error {
	value := ""
	switch v := rowArgs[0].(type) {
	case string:
		value = v
	case nil:
		// NULL from an outer join with no genres.
		return nil
	default:
		return fmt.Errorf("invalid type: %T", rowArgs[0])
	}
	if value != "" {
		sc.ans = append(sc.ans, value)
	}
	return nil
}

func (sc *SortedConcatenate) WindowValue(ctx *sqlite.FunctionContext) (driver.Value, error) {
	if len(sc.ans) == 0 {
		return "", nil
	}
	values := slices.Clone(sc.ans)
	slices.Sort(values)
	return strings.Join(values, sc.sep), nil
}

func (sc *SortedConcatenate) WindowInverse(ctx *sqlite.FunctionContext, args []driver.Value) error {
	return nil
}

func (sc *SortedConcatenate) Final(ctx *sqlite.FunctionContext) {
}

package datatables

import (
	"errors"
	"fmt"
)

// ColumnNotFoundError is returned when a request references a column index that
// the table does not define.
type ColumnNotFoundError struct {
	Index int
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column with index %d not found", e.Index)
}

func NewColumnNotFoundError(index int) error {
	return &ColumnNotFoundError{Index: index}
}

func IsColumnNotFound(err error) bool {
	var target *ColumnNotFoundError
	return errors.As(err, &target)
}

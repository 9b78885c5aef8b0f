package testutil

import (
	"fmt"
	"sync/atomic"
)

var idCounter atomic.Int64

// NewID returns a process-unique id in the shape of the stores' generated ids.
func NewID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, idCounter.Add(1))
}

func isEmptyValue(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case *string:
		return x == nil || *x == ""
	default:
		return false
	}
}

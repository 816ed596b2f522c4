package memory

import (
	"fmt"
	"os"
)

// Runtime trace switch for allocator internals - controlled by MEMORY_LOG_ALLOC.
var logAlloc = os.Getenv("MEMORY_LOG_ALLOC") != ""

// tracef prints a tagged trace line to stderr when MEMORY_LOG_ALLOC is set.
func tracef(tag, format string, args ...any) {
	if logAlloc {
		fmt.Fprintf(os.Stderr, "["+tag+"] "+format+"\n", args...)
	}
}

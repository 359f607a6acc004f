package expr

import (
	"sync"

	"github.com/expr-lang/expr/vm"
)

// programCache caches compiled programs by their rewritten source so that a
// branch guard or choice condition visited repeatedly (a loop, a re-entered
// passage) is compiled exactly once.
var (
	programCacheMu sync.RWMutex
	programCache   = make(map[string]*vm.Program)
)

func cachedProgram(source string) (*vm.Program, bool) {
	programCacheMu.RLock()
	defer programCacheMu.RUnlock()

	prog, ok := programCache[source]

	return prog, ok
}

func storeProgram(source string, prog *vm.Program) {
	programCacheMu.Lock()
	defer programCacheMu.Unlock()

	programCache[source] = prog
}

// ClearCache drops every cached compiled program. Exposed for tests and for
// long-lived hosts that reload stories with different variable shapes.
func ClearCache() {
	programCacheMu.Lock()
	defer programCacheMu.Unlock()

	programCache = make(map[string]*vm.Program)
}

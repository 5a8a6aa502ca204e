package lang

import (
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// compileCache maps (source hash, max depth) keys to *cacheEntry values.
// Trees are immutable, so one cached tree serves every Expression that
// compiles the same text.
var compileCache sync.Map

// cacheEntry holds the outcome of compiling one source text.
type cacheEntry struct {
	once   sync.Once
	root   Node
	err    error
	source string
}

func cacheKey(source string, maxDepth int) string {
	return strconv.FormatUint(xxh3.HashString(source), 36) + ":" +
		strconv.Itoa(maxDepth)
}

// compileCached parses source at most once per key. Errors are cached as
// well, since compiling is deterministic.
func compileCached(source string, maxDepth int) (Node, error) {
	value, _ := compileCache.LoadOrStore(
		cacheKey(source, maxDepth),
		&cacheEntry{source: source},
	)

	entry, ok := value.(*cacheEntry)
	if !ok || entry.source != source {
		// Hash collision: compile without caching.
		return parse(source, maxDepth)
	}

	entry.once.Do(func() {
		entry.root, entry.err = parse(source, maxDepth)
	})

	return entry.root, entry.err
}

// CacheLen returns the number of cached sources.
func CacheLen() int {
	n := 0

	compileCache.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// ClearCache removes all cached trees.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	compileCache.Clear()
}

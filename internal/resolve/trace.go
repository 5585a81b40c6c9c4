package resolve

import (
	"log"
	"strings"
)

const (
	successChar = "✓" // ✓
	failChar    = "✗" // ✗
)

// tracer is a toggle plus a *log.Logger: tracing costs nothing when
// disabled and prints a depth-indented narration of the search when
// enabled. The CLI wires a zap-backed *log.Logger in here via
// zap.NewStdLog so trace output still lands in the structured log stream.
type tracer struct {
	enabled bool
	logger  *log.Logger
	depth   int
}

func newTracer(enabled bool, logger *log.Logger) *tracer {
	return &tracer{enabled: enabled, logger: logger}
}

func (t *tracer) prefix() string {
	return strings.Repeat("| ", t.depth)
}

func (t *tracer) tryPackage(name string, candidates []PackageVersion) {
	if t == nil || !t.enabled {
		return
	}
	t.logger.Printf("%s? %s: %d candidate(s)", t.prefix(), name, len(candidates))
}

func (t *tracer) selected(pv PackageVersion) {
	if t == nil || !t.enabled {
		return
	}
	t.logger.Printf("%s%s selected %s", t.prefix(), successChar, pv)
}

func (t *tracer) rejected(pv PackageVersion, reason string) {
	if t == nil || !t.enabled {
		return
	}
	t.logger.Printf("%s%s rejected %s: %s", t.prefix(), failChar, pv, reason)
}

func (t *tracer) descend() {
	if t == nil {
		return
	}
	t.depth++
}

func (t *tracer) ascend() {
	if t == nil {
		return
	}
	t.depth--
}

func (t *tracer) finished(ok bool) {
	if t == nil || !t.enabled {
		return
	}
	if ok {
		t.logger.Printf("%s solution found", successChar)
	} else {
		t.logger.Printf("%s no solution: requirements are inconsistent", failChar)
	}
}

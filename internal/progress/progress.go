// Package progress defines the callback used by pipeline stages to report
// incremental completion. Delivery (CLI printing, SSE, anything else) is
// the caller's concern.
package progress

// Func receives (completed, total, message) after each unit of work.
// Reporting is a side effect and never gates correctness.
type Func func(current, total int, message string)

// Nop discards progress events.
func Nop(current, total int, message string) {}

// OrNop returns fn, or Nop when fn is nil, so stages can invoke the
// callback unconditionally.
func OrNop(fn Func) Func {
	if fn == nil {
		return Nop
	}
	return fn
}

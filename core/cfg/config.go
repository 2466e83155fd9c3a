package cfg

import "sync/atomic"

// DefaultSuccessor is the successor index taken by single-successor blocks.
const DefaultSuccessor = 0

// controlTransferLogInterval samples trace logs of control-transfer
// signals leaving a block: one line per interval occurrences.
const controlTransferLogInterval = 1024

var faultContextEnabled atomic.Bool

func init() {
	faultContextEnabled.Store(true)
}

// SetFaultContext toggles the wrapping of operation faults with the
// failing block's source section. When disabled faults propagate unmodified.
func SetFaultContext(enable bool) { faultContextEnabled.Store(enable) }

// FaultContextEnabled reports whether faults are enriched with block context.
func FaultContextEnabled() bool { return faultContextEnabled.Load() }

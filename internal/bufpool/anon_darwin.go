//go:build darwin

package bufpool

// Darwin has no MADV_HUGEPAGE equivalent worth requesting here.
func adviseHuge(data []byte) {}

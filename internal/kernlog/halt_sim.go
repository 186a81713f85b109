//go:build !kernel

package kernlog

// haltForever is a no-op outside the freestanding kernel build; there is no
// CPU to halt on a hosted OS, and tests need Panic to return so they can
// assert on the logged message.
func haltForever() {}

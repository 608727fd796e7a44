//go:build !linux

package wsl

// IsWSL2 is always false outside Linux.
func IsWSL2() bool {
	return false
}

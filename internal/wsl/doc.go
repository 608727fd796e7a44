// Package wsl resolves Linux paths inside a WSL2 distribution to paths the
// Windows host can open. The distribution root is probed once per process via
// powershell.exe and cached in a compute-once Cell.
package wsl

//go:build linux

package wsl

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

var detected = sync.OnceValue(func() bool {
	return isWSL2(os.Getenv("WSL_DISTRO_NAME"), kernelRelease())
})

// IsWSL2 reports whether this process runs inside a WSL2 distribution.
func IsWSL2() bool {
	return detected()
}

func kernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}

// isWSL2 matches WSL2 kernels, e.g. "5.15.153.1-microsoft-standard-WSL2".
// WSL1 kernels report "Microsoft" without the "-standard" suffix and are not
// treated as bridged.
func isWSL2(distro, release string) bool {
	release = strings.ToLower(release)
	if strings.Contains(release, "wsl2") || strings.Contains(release, "microsoft-standard") {
		return true
	}
	return distro != "" && strings.Contains(release, "microsoft")
}

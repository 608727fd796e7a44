//go:build linux

package wsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWSL2Release(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		distro  string
		release string
		want    bool
	}{
		"wsl2 kernel":            {release: "5.15.153.1-microsoft-standard-WSL2", want: true},
		"wsl2 kernel no distro":  {release: "6.6.36.3-microsoft-standard-WSL2+", want: true},
		"microsoft with distro":  {distro: "Ubuntu", release: "5.10.16.3-microsoft", want: true},
		"wsl1 kernel":            {release: "4.4.0-19041-Microsoft", want: false},
		"plain linux":            {release: "6.8.0-45-generic", want: false},
		"distro var plain linux": {distro: "Ubuntu", release: "6.8.0-45-generic", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isWSL2(tt.distro, tt.release))
		})
	}
}

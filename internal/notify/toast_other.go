//go:build !windows

package notify

// nativeToast is nil outside Windows; WSL goes through the toast script.
func nativeToast() func(title, message string) error {
	return nil
}

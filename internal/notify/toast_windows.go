//go:build windows

package notify

import (
	"github.com/go-toast/toast"
)

// nativeToast returns the go-toast based push used on native Windows.
func nativeToast() func(title, message string) error {
	return func(title, message string) error {
		n := toast.Notification{
			AppID:    "tasknotify",
			Title:    title,
			Message:  message,
			Audio:    toast.Silent,
			Duration: toast.Short,
		}
		return n.Push()
	}
}

//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || darwin)

package platform

// Notify is a no-op where no notification service is wired.
func Notify(app, title, body string, opts Options) error {
	return nil
}

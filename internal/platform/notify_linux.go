//go:build linux || freebsd || openbsd || netbsd || dragonfly

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Notify sends a desktop notification over the freedesktop.org
// Notifications D-Bus interface.
func Notify(app, title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		app, uint32(0), opts.IconPath, title, body, []string{}, map[string]dbus.Variant{}, opts.timeout())
	return call.Err
}

//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a notification through Notification Center. The icon is
// not supported by osascript.
func Notify(app, title, body string, _ Options) error {
	script := fmt.Sprintf("display notification %q with title %q subtitle %q", body, title, app)
	return exec.Command("osascript", "-e", script).Run()
}

// Package platform wraps the host desktop's notification service.
package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image shown with the
	// notification where supported.
	IconPath string
	// TimeoutMillis is how long the notification stays up; zero uses 5s.
	TimeoutMillis int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMillis <= 0 {
		return 5000
	}
	return o.TimeoutMillis
}

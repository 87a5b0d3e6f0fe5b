package config

const refreshModeVar = "TRUEDEV_REFRESH_MODE"

type Session struct {
	file *File
}

var _ SessionConfig = Session{}

// GetRefreshMode returns "shared" (concurrent 401s wait on one refresh) or
// "failfast" (a second caller gives up while a refresh is in flight).
func (s Session) GetRefreshMode() string {
	return GetEnv(refreshModeVar, orDefault(s.file.Session.RefreshMode, "shared"))
}

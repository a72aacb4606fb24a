package migrations

import activitylog "github.com/goliatone/go-activitylog"

func init() {
	if fsys, err := activitylog.Migrations(); err == nil {
		Register(fsys)
	}
}

//go:build linux || freebsd

package fsys

import (
	"time"

	"golang.org/x/sys/unix"
)

func modTime(st *unix.Stat_t) time.Time {
	return time.Unix(st.Mtim.Unix())
}

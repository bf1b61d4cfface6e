//go:build !windows

package sysinfo

import "os"

func runningAsAdmin() bool {
	return os.Geteuid() == 0
}

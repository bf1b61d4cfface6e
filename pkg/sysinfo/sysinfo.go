// Package sysinfo reports host facts the pipeline cares about at startup.
// Serial devices frequently require elevated privileges to open, so the
// launcher warns when the process runs with administrative rights it does
// not need, and explains permission failures when it lacks rights it does.
package sysinfo

// RunningAsAdmin reports whether the current process has administrative
// privileges: effective UID 0 on Unix-like systems, membership in the
// Administrators group on Windows.
func RunningAsAdmin() bool {
	return runningAsAdmin()
}

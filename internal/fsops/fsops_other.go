//go:build !linux && !darwin

package fsops

import "os"

// fillSysInfo leaves the platform-specific fields null where the OS stat
// structure is not available in a portable form.
func fillSysInfo(_ *FileInfo, _ os.FileInfo) {}

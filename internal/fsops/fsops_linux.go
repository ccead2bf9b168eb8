package fsops

import (
	"os"
	"syscall"
)

// fillSysInfo copies the stat fields the portable os.FileInfo does not
// expose. Linux has no birth time in struct stat.
func fillSysInfo(info *FileInfo, fi os.FileInfo) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	ino := st.Ino
	mode := uint32(st.Mode)
	nlink := uint64(st.Nlink)
	blocks := st.Blocks
	atime := timespecMillis(st.Atim)
	ctime := timespecMillis(st.Ctim)
	info.Ino = &ino
	info.Mode = &mode
	info.Nlink = &nlink
	info.Blocks = &blocks
	info.Atime = &atime
	info.Ctime = &ctime
}

func timespecMillis(ts syscall.Timespec) int64 {
	return ts.Sec*1000 + ts.Nsec/1e6
}

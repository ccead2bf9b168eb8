package fsops

import (
	"os"
	"syscall"
)

func fillSysInfo(info *FileInfo, fi os.FileInfo) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	ino := st.Ino
	mode := uint32(st.Mode)
	nlink := uint64(st.Nlink)
	blocks := st.Blocks
	atime := timespecMillis(st.Atimespec)
	ctime := timespecMillis(st.Ctimespec)
	birthtime := timespecMillis(st.Birthtimespec)
	info.Ino = &ino
	info.Mode = &mode
	info.Nlink = &nlink
	info.Blocks = &blocks
	info.Atime = &atime
	info.Ctime = &ctime
	info.Birthtime = &birthtime
}

func timespecMillis(ts syscall.Timespec) int64 {
	return ts.Sec*1000 + ts.Nsec/1e6
}

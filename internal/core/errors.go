package core

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"syscall"
)

// Kind is the stable error class tag shared between the native layer and the
// script-visible error constructors. The set is closed: scripts dispatch on
// these names, so they never change meaning between releases.
type Kind string

const (
	KindNotFound           Kind = "NotFound"
	KindPermissionDenied   Kind = "PermissionDenied"
	KindConnectionRefused  Kind = "ConnectionRefused"
	KindConnectionReset    Kind = "ConnectionReset"
	KindConnectionAborted  Kind = "ConnectionAborted"
	KindNotConnected       Kind = "NotConnected"
	KindAddrInUse          Kind = "AddrInUse"
	KindAddrNotAvailable   Kind = "AddrNotAvailable"
	KindBrokenPipe         Kind = "BrokenPipe"
	KindAlreadyExists      Kind = "AlreadyExists"
	KindInvalidData        Kind = "InvalidData"
	KindTimedOut           Kind = "TimedOut"
	KindInterrupted        Kind = "Interrupted"
	KindWouldBlock         Kind = "WouldBlock"
	KindWriteZero          Kind = "WriteZero"
	KindUnexpectedEof      Kind = "UnexpectedEof"
	KindBadResource        Kind = "BadResource"
	KindHttp               Kind = "Http"
	KindBusy               Kind = "Busy"
	KindNotSupported       Kind = "NotSupported"
	KindFilesystemLoop     Kind = "FilesystemLoop"
	KindIsADirectory       Kind = "IsADirectory"
	KindNetworkUnreachable Kind = "NetworkUnreachable"
	KindNotADirectory      Kind = "NotADirectory"

	// KindOther is the transport tag for errors outside the taxonomy. The
	// script side throws a plain Error for it. Not exposed as a constructor.
	KindOther Kind = "Other"

	// KindTypeError is the transport tag for argument and contract
	// violations detected before the native call. Not part of the taxonomy;
	// the script side throws the builtin TypeError for it.
	KindTypeError Kind = "TypeError"
)

// Kinds lists the taxonomy in declaration order, for building the
// script-visible constructors.
var Kinds = []Kind{
	KindNotFound, KindPermissionDenied, KindConnectionRefused,
	KindConnectionReset, KindConnectionAborted, KindNotConnected,
	KindAddrInUse, KindAddrNotAvailable, KindBrokenPipe, KindAlreadyExists,
	KindInvalidData, KindTimedOut, KindInterrupted, KindWouldBlock,
	KindWriteZero, KindUnexpectedEof, KindBadResource, KindHttp, KindBusy,
	KindNotSupported, KindFilesystemLoop, KindIsADirectory,
	KindNetworkUnreachable, KindNotADirectory,
}

// Classify maps a Go error from the native layer onto its taxonomy kind.
// Unrecognized errors become KindOther, never a panic.
func Classify(err error) Kind {
	if err == nil {
		return KindOther
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if k, ok := classifyErrno(errno); ok {
			return k
		}
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	case errors.Is(err, fs.ErrExist):
		return KindAlreadyExists
	case errors.Is(err, fs.ErrClosed):
		return KindBadResource
	case errors.Is(err, io.ErrUnexpectedEOF):
		return KindUnexpectedEof
	case errors.Is(err, io.ErrShortWrite):
		return KindWriteZero
	case errors.Is(err, os.ErrDeadlineExceeded):
		return KindTimedOut
	}
	return KindOther
}

// classifyErrno is an if-chain rather than a switch: several errno names
// alias the same value on some platforms (EAGAIN/EWOULDBLOCK,
// ENOTSUP/EOPNOTSUPP) and duplicate switch cases do not compile.
func classifyErrno(errno syscall.Errno) (Kind, bool) {
	if errno == syscall.ENOENT {
		return KindNotFound, true
	}
	if errno == syscall.EACCES || errno == syscall.EPERM {
		return KindPermissionDenied, true
	}
	if errno == syscall.EEXIST {
		return KindAlreadyExists, true
	}
	if errno == syscall.ELOOP {
		return KindFilesystemLoop, true
	}
	if errno == syscall.EISDIR {
		return KindIsADirectory, true
	}
	if errno == syscall.ENOTDIR {
		return KindNotADirectory, true
	}
	if errno == syscall.EBUSY {
		return KindBusy, true
	}
	if errno == syscall.ENOTSUP || errno == syscall.EOPNOTSUPP {
		return KindNotSupported, true
	}
	if errno == syscall.ETIMEDOUT {
		return KindTimedOut, true
	}
	if errno == syscall.EINTR {
		return KindInterrupted, true
	}
	if errno == syscall.EAGAIN || errno == syscall.EWOULDBLOCK {
		return KindWouldBlock, true
	}
	if errno == syscall.EPIPE {
		return KindBrokenPipe, true
	}
	if errno == syscall.ECONNREFUSED {
		return KindConnectionRefused, true
	}
	if errno == syscall.ECONNRESET {
		return KindConnectionReset, true
	}
	if errno == syscall.ECONNABORTED {
		return KindConnectionAborted, true
	}
	if errno == syscall.ENOTCONN {
		return KindNotConnected, true
	}
	if errno == syscall.EADDRINUSE {
		return KindAddrInUse, true
	}
	if errno == syscall.EADDRNOTAVAIL {
		return KindAddrNotAvailable, true
	}
	if errno == syscall.ENETUNREACH {
		return KindNetworkUnreachable, true
	}
	if errno == syscall.EINVAL {
		return KindInvalidData, true
	}
	if errno == syscall.EBADF {
		return KindBadResource, true
	}
	return KindOther, false
}

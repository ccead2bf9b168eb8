// Package pathutil converts file: URLs into OS paths for the filesystem
// operations. Every operation accepts either a plain path string or a file
// URL; the URL form is normalized here before any native call happens.
package pathutil

import (
	"errors"
	"net/url"
	"runtime"
	"strings"
)

var (
	// ErrNotFileURL rejects URLs whose scheme is not file:.
	ErrNotFileURL = errors.New("must be a file URL")

	// ErrInvalidHost rejects file URLs with a host part on POSIX systems.
	ErrInvalidHost = errors.New("file URL host must be empty")
)

// FromFileURL converts a file: URL into an OS path for the running platform.
func FromFileURL(rawURL string) (string, error) {
	return fromFileURL(rawURL, runtime.GOOS)
}

func fromFileURL(rawURL, goos string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrNotFileURL
	}
	if u.Scheme != "file" {
		return "", ErrNotFileURL
	}

	// Decode from the escaped form so a raw %25 in the URL survives as a
	// literal percent sign in the path.
	p := decodePercent(u.EscapedPath())

	if goos == "windows" {
		return windowsPath(u.Host, p)
	}
	if u.Host != "" {
		return "", ErrInvalidHost
	}
	return p, nil
}

// windowsPath rewrites the URL path into drive-letter or UNC form.
func windowsPath(host, p string) (string, error) {
	p = strings.ReplaceAll(p, "/", `\`)
	if host != "" {
		// file://server/share/file -> \\server\share\file
		return `\\` + host + p, nil
	}
	// file:///C:/dir/file -> C:\dir\file
	if len(p) >= 3 && p[0] == '\\' && isDriveLetter(p[1]) && p[2] == ':' {
		return p[1:], nil
	}
	return p, nil
}

func isDriveLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// decodePercent resolves two-hex-digit escapes and leaves any other percent
// sign alone, so "%25" becomes "%" while a bare "%" survives unchanged.
func decodePercent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func unhex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// StripUNCPrefix removes a Windows verbatim prefix from a canonicalized
// path: \\?\C:\dir -> C:\dir, \\?\UNC\server\share -> \\server\share.
func StripUNCPrefix(p string) string {
	if !strings.HasPrefix(p, `\\?\`) {
		return p
	}
	rest := p[4:]
	if strings.HasPrefix(rest, `UNC\`) {
		return `\\` + rest[4:]
	}
	return rest
}

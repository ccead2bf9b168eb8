package pathutil

import "testing"

func TestFromFileURLPosix(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"file:///home/user/file.txt", "/home/user/file.txt"},
		{"file:///tmp/with%20space.txt", "/tmp/with space.txt"},
		{"file:///tmp/100%25.txt", "/tmp/100%.txt"},
		{"file:///", "/"},
	}
	for _, c := range cases {
		got, err := fromFileURL(c.url, "linux")
		if err != nil {
			t.Fatalf("fromFileURL(%q): %v", c.url, err)
		}
		if got != c.want {
			t.Errorf("fromFileURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestFromFileURLRejectsNonFileScheme(t *testing.T) {
	for _, raw := range []string{"https://example.com/x", "ftp://host/x", "data:text/plain,hi"} {
		if _, err := fromFileURL(raw, "linux"); err != ErrNotFileURL {
			t.Errorf("fromFileURL(%q) err = %v, want ErrNotFileURL", raw, err)
		}
	}
}

func TestFromFileURLRejectsPosixHost(t *testing.T) {
	if _, err := fromFileURL("file://server/share/x", "linux"); err != ErrInvalidHost {
		t.Errorf("err = %v, want ErrInvalidHost", err)
	}
}

func TestFromFileURLWindows(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"file:///C:/Users/test/file.txt", `C:\Users\test\file.txt`},
		{"file:///c:/dir", `c:\dir`},
		{"file://server/share/file.txt", `\\server\share\file.txt`},
		{"file:///C:/with%20space", `C:\with space`},
	}
	for _, c := range cases {
		got, err := fromFileURL(c.url, "windows")
		if err != nil {
			t.Fatalf("fromFileURL(%q): %v", c.url, err)
		}
		if got != c.want {
			t.Errorf("fromFileURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestDecodePercentPreservesBarePercent(t *testing.T) {
	cases := []struct{ in, want string }{
		{"%25", "%"},
		{"%", "%"},
		{"%2", "%2"},
		{"%zz", "%zz"},
		{"a%20b%", "a b%"},
	}
	for _, c := range cases {
		if got := decodePercent(c.in); got != c.want {
			t.Errorf("decodePercent(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripUNCPrefix(t *testing.T) {
	cases := []struct{ in, want string }{
		{`\\?\C:\dir\file`, `C:\dir\file`},
		{`\\?\UNC\server\share`, `\\server\share`},
		{`C:\plain`, `C:\plain`},
		{`\\server\share`, `\\server\share`},
	}
	for _, c := range cases {
		if got := StripUNCPrefix(c.in); got != c.want {
			t.Errorf("StripUNCPrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

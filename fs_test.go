package minideno

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestFSTextRoundTrip(t *testing.T) {
	rt := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "note.txt")

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		Deno.writeTextFileSync(%s, 'héllo wörld ✓');
		return Deno.readTextFileSync(%s);
	})()`, jsStr(path), jsStr(path)), `"héllo wörld ✓"`)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back from Go: %v", err)
	}
	if string(data) != "héllo wörld ✓" {
		t.Errorf("file content = %q", data)
	}
}

func TestFSBinaryRoundTrip(t *testing.T) {
	rt := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "blob.bin")

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		var bytes = new Uint8Array([0, 1, 2, 253, 254, 255]);
		Deno.writeFileSync(%s, bytes);
		var back = Deno.readFileSync(%s);
		return [back instanceof Uint8Array, Array.from(back)];
	})()`, jsStr(path), jsStr(path)), `[true,[0,1,2,253,254,255]]`)
}

func TestFSWriteFileAcceptsString(t *testing.T) {
	rt := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "str.txt")
	expectJSON(t, rt, fmt.Sprintf(`(function() {
		Deno.writeFileSync(%s, 'plain text');
		return Deno.readTextFileSync(%s);
	})()`, jsStr(path), jsStr(path)), `"plain text"`)
}

func TestFSWriteOptions(t *testing.T) {
	rt := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "opts.txt")

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		Deno.writeTextFileSync(%s, 'a');
		Deno.writeTextFileSync(%s, 'b', { append: true });
		return Deno.readTextFileSync(%s);
	})()`, jsStr(path), jsStr(path), jsStr(path)), `"ab"`)

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		try {
			Deno.writeTextFileSync(%s, 'x', { createNew: true });
			return 'no error';
		} catch (e) {
			return e.name;
		}
	})()`, jsStr(path)), `"AlreadyExists"`)

	missing := filepath.Join(t.TempDir(), "missing.txt")
	expectJSON(t, rt, fmt.Sprintf(`(function() {
		try {
			Deno.writeTextFileSync(%s, 'x', { create: false });
			return 'no error';
		} catch (e) {
			return e.name;
		}
	})()`, jsStr(missing)), `"NotFound"`)
}

func TestFSStat(t *testing.T) {
	rt := newTestRuntime(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		var info = Deno.statSync(%s);
		return [info.isFile, info.isDirectory, info.isSymlink, info.size,
			info.mtime instanceof Date];
	})()`, jsStr(path)), `[true,false,false,5,true]`)

	expectJSON(t, rt, fmt.Sprintf(`Deno.statSync(%s).isDirectory`, jsStr(dir)), "true")
}

func TestFSMkdirReadDirRemove(t *testing.T) {
	rt := newTestRuntime(t)
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		Deno.mkdirSync(%s, { recursive: true });
		Deno.writeTextFileSync(%s, 'x');
		var names = Deno.readDirSync(%s).map(function(e) { return e.name; });
		names.sort();
		return names;
	})()`, jsStr(nested), jsStr(filepath.Join(nested, "file.txt")), jsStr(nested)), `["file.txt"]`)

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		try {
			Deno.removeSync(%s);
			return 'no error';
		} catch (e) {
			return 'refused';
		}
	})()`, jsStr(filepath.Join(dir, "a"))), `"refused"`)

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		Deno.removeSync(%s, { recursive: true });
		try {
			Deno.statSync(%s);
			return 'still there';
		} catch (e) {
			return e.name;
		}
	})()`, jsStr(filepath.Join(dir, "a")), jsStr(nested)), `"NotFound"`)
}

func TestFSCopyRenameTruncate(t *testing.T) {
	rt := newTestRuntime(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	cp := filepath.Join(dir, "copy.txt")
	mv := filepath.Join(dir, "moved.txt")

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		Deno.writeTextFileSync(%s, '0123456789');
		Deno.copyFileSync(%s, %s);
		Deno.renameSync(%s, %s);
		Deno.truncateSync(%s, 4);
		return [Deno.readTextFileSync(%s), Deno.readTextFileSync(%s)];
	})()`, jsStr(src), jsStr(src), jsStr(cp), jsStr(cp), jsStr(mv), jsStr(mv),
		jsStr(src), jsStr(mv)), `["0123456789","0123"]`)
}

func TestFSRealPathAndCwd(t *testing.T) {
	rt := newTestRuntime(t)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	expectJSON(t, rt, "Deno.cwd()", jsStr(wd))

	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "alias.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	expectJSON(t, rt, fmt.Sprintf(
		`Deno.realPathSync(%s) === Deno.realPathSync(%s)`, jsStr(link), jsStr(target)), "true")
}

func TestFSMakeTemp(t *testing.T) {
	rt := newTestRuntime(t)
	dir := t.TempDir()

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		var d = Deno.makeTempDirSync({ dir: %s, prefix: 'pre_', suffix: '_suf' });
		var name = d.split('/').pop();
		var info = Deno.statSync(d);
		return [info.isDirectory, name.indexOf('pre_') === 0,
			name.indexOf('_suf') === name.length - 4];
	})()`, jsStr(dir)), `[true,true,true]`)

	expectJSON(t, rt, fmt.Sprintf(`(function() {
		var f = Deno.makeTempFileSync({ dir: %s });
		var info = Deno.statSync(f);
		return [info.isFile, info.size];
	})()`, jsStr(dir)), `[true,0]`)
}

func TestFSAcceptsFileURLs(t *testing.T) {
	rt := newTestRuntime(t)
	path := filepath.Join(t.TempDir(), "via url.txt")
	if err := os.WriteFile(path, []byte("from url"), 0o644); err != nil {
		t.Fatal(err)
	}
	fileURL := "file://" + filepath.ToSlash(path)

	expectJSON(t, rt, fmt.Sprintf(
		`Deno.readTextFileSync(new URL(%s))`, jsStr(fileURL)), `"from url"`)
}

func TestFSRejectsNonFileURLs(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		try {
			Deno.readTextFileSync(new URL('https://example.com/etc/passwd'));
			return 'no error';
		} catch (e) {
			return e instanceof TypeError;
		}
	})()`, "true")
}

func TestFSReadDirectoryAsFile(t *testing.T) {
	rt := newTestRuntime(t)
	dir := t.TempDir()
	expectJSON(t, rt, fmt.Sprintf(`(function() {
		try {
			Deno.readFileSync(%s);
			return 'no error';
		} catch (e) {
			return e.name;
		}
	})()`, jsStr(dir)), `"IsADirectory"`)
}

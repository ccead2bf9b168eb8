package bootstrap

import (
	"encoding/base64"
	"encoding/json"

	"github.com/minideno/minideno/internal/core"
	"github.com/minideno/minideno/internal/fsops"
	"github.com/minideno/minideno/internal/pathutil"
)

// pathOrURL is how the JS adapter tags each path argument: plain strings
// pass through, URL objects carry their href and must normalize to an OS
// path before any native call.
type pathOrURL struct {
	Path *string `json:"path"`
	URL  *string `json:"url"`
}

// SetupFS installs the filesystem operations on bridge.fs. All operations
// run synchronously through one dispatcher; binary payloads cross the
// boundary base64-encoded.
func SetupFS(rt core.JSRuntime) error {
	if err := requireBridge(rt, "fs"); err != nil {
		return err
	}
	if err := rt.RegisterFunc("__md_fs", fsDispatch); err != nil {
		return err
	}
	return rt.Eval(fsJS)
}

func fsDispatch(op, argsJSON string) string {
	var args []json.RawMessage
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return errJSON(core.KindTypeError, "malformed arguments for "+op)
	}

	switch op {
	case "cwd":
		dir, err := fsops.Cwd()
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(dir)

	case "readFileSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		data, err := fsops.ReadFile(path)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(base64.StdEncoding.EncodeToString(data))

	case "readTextFileSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		data, err := fsops.ReadFile(path)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(string(data))

	case "writeFileSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		b64, errEnv := argString(args, 1)
		if errEnv != "" {
			return errEnv
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return errJSON(core.KindTypeError, "malformed file data payload")
		}
		opts, errEnv := argWriteOptions(args, 2)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.WriteFile(path, data, opts); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "writeTextFileSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		text, errEnv := argString(args, 1)
		if errEnv != "" {
			return errEnv
		}
		opts, errEnv := argWriteOptions(args, 2)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.WriteFile(path, []byte(text), opts); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "statSync", "lstatSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		stat := fsops.Stat
		if op == "lstatSync" {
			stat = fsops.Lstat
		}
		info, err := stat(path)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(info)

	case "mkdirSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		recursive, errEnv := argRecursive(args, 1)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.Mkdir(path, recursive); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "removeSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		recursive, errEnv := argRecursive(args, 1)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.Remove(path, recursive); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "copyFileSync":
		from, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		to, errEnv := argPath(args, 1)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.CopyFile(from, to); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "readDirSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		entries, err := fsops.ReadDir(path)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(entries)

	case "renameSync":
		oldPath, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		newPath, errEnv := argPath(args, 1)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.Rename(oldPath, newPath); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "realPathSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		resolved, err := fsops.RealPath(path)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(resolved)

	case "truncateSync":
		path, errEnv := argPath(args, 0)
		if errEnv != "" {
			return errEnv
		}
		size, errEnv := argSize(args, 1)
		if errEnv != "" {
			return errEnv
		}
		if err := fsops.Truncate(path, size); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "makeTempDirSync", "makeTempFileSync":
		opts, errEnv := argTempOptions(args, 0)
		if errEnv != "" {
			return errEnv
		}
		makeTemp := fsops.MakeTempDir
		if op == "makeTempFileSync" {
			makeTemp = fsops.MakeTempFile
		}
		name, err := makeTemp(opts)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(name)
	}

	return errJSON(core.KindNotSupported, "unknown fs operation "+op)
}

func argPath(args []json.RawMessage, i int) (string, string) {
	if i >= len(args) {
		return "", errJSON(core.KindTypeError, "missing path argument")
	}
	var a pathOrURL
	if err := json.Unmarshal(args[i], &a); err != nil {
		return "", errJSON(core.KindTypeError, "path must be a string or a file URL")
	}
	if a.URL != nil {
		p, err := pathutil.FromFileURL(*a.URL)
		if err != nil {
			return "", errJSON(core.KindTypeError, err.Error())
		}
		return p, ""
	}
	if a.Path != nil {
		return *a.Path, ""
	}
	return "", errJSON(core.KindTypeError, "path must be a string or a file URL")
}

func argString(args []json.RawMessage, i int) (string, string) {
	if i >= len(args) {
		return "", errJSON(core.KindTypeError, "missing argument")
	}
	var s string
	if err := json.Unmarshal(args[i], &s); err != nil {
		return "", errJSON(core.KindTypeError, "argument must be a string")
	}
	return s, ""
}

func argWriteOptions(args []json.RawMessage, i int) (fsops.WriteOptions, string) {
	opts := fsops.WriteOptions{Create: true}
	if i >= len(args) {
		return opts, ""
	}
	if err := json.Unmarshal(args[i], &opts); err != nil {
		return opts, errJSON(core.KindTypeError, "malformed write options")
	}
	return opts, ""
}

func argRecursive(args []json.RawMessage, i int) (bool, string) {
	if i >= len(args) {
		return false, ""
	}
	var opts struct {
		Recursive bool `json:"recursive"`
	}
	if err := json.Unmarshal(args[i], &opts); err != nil {
		return false, errJSON(core.KindTypeError, "malformed options")
	}
	return opts.Recursive, ""
}

func argSize(args []json.RawMessage, i int) (int64, string) {
	if i >= len(args) {
		return 0, ""
	}
	var size float64
	if err := json.Unmarshal(args[i], &size); err != nil {
		return 0, errJSON(core.KindTypeError, "size must be a number")
	}
	if size < 0 {
		return 0, errJSON(core.KindTypeError, "size must not be negative")
	}
	return int64(size), ""
}

func argTempOptions(args []json.RawMessage, i int) (fsops.MakeTempOptions, string) {
	var opts fsops.MakeTempOptions
	if i >= len(args) {
		return opts, ""
	}
	if err := json.Unmarshal(args[i], &opts); err != nil {
		return opts, errJSON(core.KindTypeError, "malformed temp options")
	}
	return opts, ""
}

const fsJS = `
(function() {
	var root = globalThis[Symbol.for("minideno.internal")];
	function call(op, args) {
		return root.unwrap(__md_fs(op, JSON.stringify(args)));
	}
	function pathArg(p) {
		if (typeof p === 'string') return { path: p };
		if (p instanceof URL || (p && typeof p === 'object' && typeof p.href === 'string')) {
			return { url: String(p.href) };
		}
		throw new TypeError('path must be a string or a file URL');
	}
	function b64ToBytes(b64) {
		var raw = atob(b64);
		var out = new Uint8Array(raw.length);
		for (var i = 0; i < raw.length; i++) out[i] = raw.charCodeAt(i);
		return out;
	}
	function bytesToB64(data) {
		var view;
		if (data instanceof Uint8Array) {
			view = data;
		} else if (data instanceof ArrayBuffer) {
			view = new Uint8Array(data);
		} else if (data && data.buffer instanceof ArrayBuffer) {
			view = new Uint8Array(data.buffer, data.byteOffset, data.byteLength);
		} else {
			throw new TypeError('data must be a Uint8Array or ArrayBuffer');
		}
		var parts = [];
		for (var i = 0; i < view.length; i += 8192) {
			parts.push(String.fromCharCode.apply(null, view.subarray(i, Math.min(i + 8192, view.length))));
		}
		return btoa(parts.join(''));
	}
	function toDate(ms) {
		return ms === null || ms === undefined ? null : new Date(ms);
	}
	function infoToJS(info) {
		info.mtime = toDate(info.mtime);
		info.atime = toDate(info.atime);
		info.birthtime = toDate(info.birthtime);
		info.ctime = toDate(info.ctime);
		return info;
	}

	var fs = root.fs;
	fs.cwd = function() { return call('cwd', []); };
	fs.readFileSync = function(path) { return b64ToBytes(call('readFileSync', [pathArg(path)])); };
	fs.readTextFileSync = function(path) { return call('readTextFileSync', [pathArg(path)]); };
	fs.writeFileSync = function(path, data, options) {
		if (typeof data === 'string') {
			call('writeTextFileSync', [pathArg(path), data, options || {}]);
			return;
		}
		call('writeFileSync', [pathArg(path), bytesToB64(data), options || {}]);
	};
	fs.writeTextFileSync = function(path, data, options) {
		call('writeTextFileSync', [pathArg(path), String(data), options || {}]);
	};
	fs.statSync = function(path) { return infoToJS(call('statSync', [pathArg(path)])); };
	fs.lstatSync = function(path) { return infoToJS(call('lstatSync', [pathArg(path)])); };
	fs.mkdirSync = function(path, options) { call('mkdirSync', [pathArg(path), options || {}]); };
	fs.removeSync = function(path, options) { call('removeSync', [pathArg(path), options || {}]); };
	fs.copyFileSync = function(from, to) { call('copyFileSync', [pathArg(from), pathArg(to)]); };
	fs.readDirSync = function(path) { return call('readDirSync', [pathArg(path)]); };
	fs.renameSync = function(oldPath, newPath) { call('renameSync', [pathArg(oldPath), pathArg(newPath)]); };
	fs.realPathSync = function(path) { return call('realPathSync', [pathArg(path)]); };
	fs.truncateSync = function(path, len) { call('truncateSync', [pathArg(path), len === undefined ? 0 : len]); };
	fs.makeTempDirSync = function(options) { return call('makeTempDirSync', [options || {}]); };
	fs.makeTempFileSync = function(options) { return call('makeTempFileSync', [options || {}]); };
})();
`

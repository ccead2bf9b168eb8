package bootstrap

import (
	"encoding/base64"
	"strings"

	"github.com/minideno/minideno/internal/core"
)

// SetupEncoding installs Go-backed btoa/atob on bridge.encoding and mirrors
// them onto globalThis, plus pure-JS TextEncoder/TextDecoder.
//
// The natives answer with a prefixed string: "OK:" plus the payload, or
// "ERROR:<kind>:<message>". The JS wrapper translates the error form into a
// typed exception, so the sentinel text never escapes as a return value.
func SetupEncoding(rt core.JSRuntime) error {
	if err := requireBridge(rt, "encoding"); err != nil {
		return err
	}

	if err := rt.RegisterFunc("__md_btoa", goBtoa); err != nil {
		return err
	}
	if err := rt.RegisterFunc("__md_atob", goAtob); err != nil {
		return err
	}
	if err := rt.Eval(encodingJS); err != nil {
		return err
	}
	return rt.Eval(textCodecJS)
}

func goBtoa(data string) string {
	buf := make([]byte, 0, len(data))
	for _, r := range data {
		if r > 0xff {
			return "ERROR:TypeError:btoa: string contains characters outside of the Latin1 range"
		}
		buf = append(buf, byte(r))
	}
	return "OK:" + base64.StdEncoding.EncodeToString(buf)
}

func goAtob(data string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\f', '\r', ' ':
			return -1
		}
		return r
	}, data)

	var decoded []byte
	var err error
	if strings.HasSuffix(s, "=") {
		decoded, err = base64.StdEncoding.DecodeString(s)
	} else {
		decoded, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return "ERROR:InvalidData:atob: invalid base64 string"
	}

	// The decoded bytes become a binary string: one code unit per byte.
	var b strings.Builder
	b.Grow(len(decoded) + 3)
	b.WriteString("OK:")
	for _, c := range decoded {
		b.WriteRune(rune(c))
	}
	return b.String()
}

const encodingJS = `
(function() {
	var root = globalThis[Symbol.for("minideno.internal")];
	function translate(raw, op) {
		if (raw.indexOf('OK:') === 0) return raw.slice(3);
		if (raw.indexOf('ERROR:') === 0) {
			var rest = raw.slice(6);
			var sep = rest.indexOf(':');
			root.throwKind(rest.slice(0, sep), rest.slice(sep + 1));
		}
		root.throwKind('Other', op + ': malformed native response');
	}
	root.encoding.btoa = function(data) {
		if (arguments.length < 1) throw new TypeError('btoa requires at least 1 argument(s)');
		if (typeof data !== 'string') throw new TypeError('btoa: argument must be a string');
		return translate(__md_btoa(data), 'btoa');
	};
	root.encoding.atob = function(data) {
		if (arguments.length < 1) throw new TypeError('atob requires at least 1 argument(s)');
		if (typeof data !== 'string') throw new TypeError('atob: argument must be a string');
		return translate(__md_atob(data), 'atob');
	};
	globalThis.btoa = root.encoding.btoa;
	globalThis.atob = root.encoding.atob;
})();
`

const textCodecJS = `
(function() {
	class TextEncoder {
		get encoding() { return 'utf-8'; }
		encode(input) {
			var s = input === undefined ? '' : String(input);
			var out = [];
			for (var i = 0; i < s.length; i++) {
				var cp = s.codePointAt(i);
				if (cp > 0xffff) i++;
				if (cp < 0x80) {
					out.push(cp);
				} else if (cp < 0x800) {
					out.push(0xc0 | (cp >> 6), 0x80 | (cp & 63));
				} else if (cp < 0x10000) {
					out.push(0xe0 | (cp >> 12), 0x80 | ((cp >> 6) & 63), 0x80 | (cp & 63));
				} else {
					out.push(0xf0 | (cp >> 18), 0x80 | ((cp >> 12) & 63), 0x80 | ((cp >> 6) & 63), 0x80 | (cp & 63));
				}
			}
			return new Uint8Array(out);
		}
	}
	class TextDecoder {
		constructor(label) {
			var enc = (label === undefined ? 'utf-8' : String(label)).toLowerCase();
			if (enc !== 'utf-8' && enc !== 'utf8' && enc !== 'unicode-1-1-utf-8') {
				throw new RangeError('unsupported encoding: ' + label);
			}
		}
		get encoding() { return 'utf-8'; }
		decode(input) {
			if (input === undefined) return '';
			var bytes;
			if (input instanceof Uint8Array) {
				bytes = input;
			} else if (input instanceof ArrayBuffer) {
				bytes = new Uint8Array(input);
			} else if (input && input.buffer instanceof ArrayBuffer) {
				bytes = new Uint8Array(input.buffer, input.byteOffset, input.byteLength);
			} else {
				throw new TypeError('decode input must be a BufferSource');
			}
			var out = '';
			var i = 0;
			while (i < bytes.length) {
				var b = bytes[i++];
				var cp = b;
				var extra = 0;
				if (b >= 0xf0) { cp = b & 7; extra = 3; }
				else if (b >= 0xe0) { cp = b & 15; extra = 2; }
				else if (b >= 0xc0) { cp = b & 31; extra = 1; }
				else if (b >= 0x80) { out += '�'; continue; }
				var ok = true;
				for (var j = 0; j < extra; j++) {
					var c = bytes[i];
					if (c === undefined || (c & 0xc0) !== 0x80) { ok = false; break; }
					cp = (cp << 6) | (c & 63);
					i++;
				}
				out += ok ? String.fromCodePoint(cp) : '�';
			}
			return out;
		}
	}
	globalThis.TextEncoder = TextEncoder;
	globalThis.TextDecoder = TextDecoder;
})();
`

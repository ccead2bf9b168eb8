package bootstrap

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/minideno/minideno/internal/core"
)

// urlParts is the component envelope crossing the boundary for every parse
// and setter call. Components use WHATWG getter forms: protocol keeps the
// trailing colon, search and hash keep their prefix character.
type urlParts struct {
	Href     string `json:"href"`
	Protocol string `json:"protocol"`
	Host     string `json:"host"`
	Hostname string `json:"hostname"`
	Port     string `json:"port"`
	Pathname string `json:"pathname"`
	Search   string `json:"search"`
	Hash     string `json:"hash"`
	Origin   string `json:"origin"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupURL installs the URL and URLSearchParams globals. Parsing and
// component assignment run in Go; the JS classes are thin views over the
// component envelope.
func SetupURL(rt core.JSRuntime) error {
	if err := requireBridge(rt, "web"); err != nil {
		return err
	}

	if err := rt.RegisterFunc("__md_url_parse", func(input, base string) string {
		parts, err := parseURL(input, base)
		if err != nil {
			return errJSON(core.KindTypeError, err.Error())
		}
		return okJSON(parts)
	}); err != nil {
		return err
	}

	if err := rt.RegisterFunc("__md_url_set", func(href, component, value string) string {
		parts, err := setURLComponent(href, component, value)
		if err != nil {
			return errJSON(core.KindTypeError, err.Error())
		}
		return okJSON(parts)
	}); err != nil {
		return err
	}

	return rt.Eval(urlJS)
}

func isSpecialScheme(scheme string) bool {
	switch scheme {
	case "http", "https", "ws", "wss", "ftp", "file":
		return true
	}
	return false
}

func parseURL(input, base string) (*urlParts, error) {
	var u *url.URL
	var err error
	if base != "" {
		var b *url.URL
		b, err = url.Parse(base)
		if err != nil || b.Scheme == "" {
			return nil, fmt.Errorf("invalid base URL: %q", base)
		}
		u, err = b.Parse(input)
	} else {
		u, err = url.Parse(input)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %q", input)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("invalid URL: %q (relative URL without a base)", input)
	}
	if isSpecialScheme(u.Scheme) && u.Scheme != "file" && u.Host == "" {
		return nil, fmt.Errorf("invalid URL: %q (missing host)", input)
	}
	return partsFrom(u), nil
}

func partsFrom(u *url.URL) *urlParts {
	u.Scheme = strings.ToLower(u.Scheme)
	if isSpecialScheme(u.Scheme) {
		u.Host = strings.ToLower(u.Host)
		if u.Path == "" && u.Opaque == "" {
			u.Path = "/"
		}
	}

	p := &urlParts{
		Href:     u.String(),
		Protocol: u.Scheme + ":",
		Host:     u.Host,
		Hostname: u.Hostname(),
		Port:     u.Port(),
		Pathname: u.EscapedPath(),
		Origin:   "null",
	}
	if u.Opaque != "" {
		p.Pathname = u.Opaque
	}
	if u.RawQuery != "" {
		p.Search = "?" + u.RawQuery
	}
	if u.Fragment != "" {
		p.Hash = "#" + u.EscapedFragment()
	}
	if u.User != nil {
		p.Username = u.User.Username()
		p.Password, _ = u.User.Password()
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss", "ftp":
		p.Origin = u.Scheme + "://" + u.Host
	}
	return p
}

// setURLComponent splices one component into the canonical serialization and
// re-parses, so every assignment is validated and normalized by the same
// parser that built the URL. An assignment the parser rejects returns an
// error and the caller keeps the previous state.
func setURLComponent(href, component, value string) (*urlParts, error) {
	p, err := parseURL(href, "")
	if err != nil {
		return nil, err
	}

	switch component {
	case "protocol":
		p.Protocol = strings.ToLower(strings.TrimSuffix(value, ":")) + ":"
	case "username":
		p.Username = value
	case "password":
		p.Password = value
	case "host":
		p.Host = value
	case "hostname":
		if p.Port != "" {
			p.Host = value + ":" + p.Port
		} else {
			p.Host = value
		}
	case "port":
		digits := leadingDigits(value)
		if value != "" && digits == "" {
			return p, nil
		}
		if digits == "" {
			p.Host = p.Hostname
		} else {
			p.Host = p.Hostname + ":" + digits
		}
	case "pathname":
		if !strings.HasPrefix(value, "/") {
			value = "/" + value
		}
		p.Pathname = value
	case "search":
		if value == "" {
			p.Search = ""
		} else if strings.HasPrefix(value, "?") {
			p.Search = value
		} else {
			p.Search = "?" + value
		}
	case "hash":
		if value == "" {
			p.Hash = ""
		} else if strings.HasPrefix(value, "#") {
			p.Hash = value
		} else {
			p.Hash = "#" + value
		}
	default:
		return nil, fmt.Errorf("unknown URL component %q", component)
	}

	return parseURL(serializeParts(p), "")
}

func serializeParts(p *urlParts) string {
	var b strings.Builder
	b.WriteString(p.Protocol)
	scheme := strings.TrimSuffix(p.Protocol, ":")
	if p.Host != "" || scheme == "file" {
		b.WriteString("//")
		if p.Username != "" || p.Password != "" {
			b.WriteString(p.Username)
			if p.Password != "" {
				b.WriteString(":")
				b.WriteString(p.Password)
			}
			b.WriteString("@")
		}
		b.WriteString(p.Host)
	}
	b.WriteString(p.Pathname)
	b.WriteString(p.Search)
	b.WriteString(p.Hash)
	return b.String()
}

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

const urlJS = `
(function() {
	var root = globalThis[Symbol.for("minideno.internal")];

	function parseOrThrow(input, base) {
		var raw = __md_url_parse(String(input), base === undefined || base === null ? '' : String(base));
		var r = JSON.parse(raw);
		if (r.err) throw new TypeError(r.err.message);
		return r.ok;
	}

	function decodeQueryPart(s) {
		try {
			return decodeURIComponent(s.replace(/\+/g, ' '));
		} catch (e) {
			return s;
		}
	}
	function encodeQueryPart(s) {
		// encodeURIComponent leaves !'()~ alone; the form-urlencoded
		// serializer percent-encodes them.
		return encodeURIComponent(s).replace(/[!'()~]/g, function(c) {
			return '%' + c.charCodeAt(0).toString(16).toUpperCase();
		}).replace(/%20/g, '+');
	}
	function parseQuery(search) {
		var entries = [];
		var s = search.charAt(0) === '?' ? search.slice(1) : search;
		if (!s) return entries;
		var pairs = s.split('&');
		for (var i = 0; i < pairs.length; i++) {
			if (!pairs[i]) continue;
			var eq = pairs[i].indexOf('=');
			var k = eq < 0 ? pairs[i] : pairs[i].slice(0, eq);
			var v = eq < 0 ? '' : pairs[i].slice(eq + 1);
			entries.push([decodeQueryPart(k), decodeQueryPart(v)]);
		}
		return entries;
	}

	class URLSearchParams {
		constructor(init) {
			this._url = null;
			this._entries = [];
			if (init === undefined || init === null) return;
			if (init instanceof URLSearchParams) {
				for (var i = 0; i < init._entries.length; i++) {
					this._entries.push([init._entries[i][0], init._entries[i][1]]);
				}
			} else if (Array.isArray(init)) {
				for (var i = 0; i < init.length; i++) {
					var pair = init[i];
					if (!pair || pair.length !== 2) {
						throw new TypeError('URLSearchParams init must be a sequence of name-value pairs');
					}
					this._entries.push([String(pair[0]), String(pair[1])]);
				}
			} else if (typeof init === 'object') {
				var keys = Object.keys(init);
				for (var i = 0; i < keys.length; i++) {
					this._entries.push([keys[i], String(init[keys[i]])]);
				}
			} else {
				this._entries = parseQuery(String(init));
			}
		}
		_sync() {
			if (this._url) this._url._setComponent('search', this.toString());
		}
		append(name, value) {
			this._entries.push([String(name), String(value)]);
			this._sync();
		}
		delete(name, value) {
			name = String(name);
			var matchValue = value !== undefined;
			if (matchValue) value = String(value);
			var kept = [];
			for (var i = 0; i < this._entries.length; i++) {
				var e = this._entries[i];
				if (e[0] === name && (!matchValue || e[1] === value)) continue;
				kept.push(e);
			}
			this._entries = kept;
			this._sync();
		}
		get(name) {
			name = String(name);
			for (var i = 0; i < this._entries.length; i++) {
				if (this._entries[i][0] === name) return this._entries[i][1];
			}
			return null;
		}
		getAll(name) {
			name = String(name);
			var out = [];
			for (var i = 0; i < this._entries.length; i++) {
				if (this._entries[i][0] === name) out.push(this._entries[i][1]);
			}
			return out;
		}
		has(name, value) {
			name = String(name);
			var matchValue = value !== undefined;
			if (matchValue) value = String(value);
			for (var i = 0; i < this._entries.length; i++) {
				var e = this._entries[i];
				if (e[0] === name && (!matchValue || e[1] === value)) return true;
			}
			return false;
		}
		set(name, value) {
			name = String(name);
			value = String(value);
			var done = false;
			var kept = [];
			for (var i = 0; i < this._entries.length; i++) {
				var e = this._entries[i];
				if (e[0] === name) {
					if (done) continue;
					kept.push([name, value]);
					done = true;
				} else {
					kept.push(e);
				}
			}
			if (!done) kept.push([name, value]);
			this._entries = kept;
			this._sync();
		}
		sort() {
			this._entries.sort(function(a, b) {
				return a[0] < b[0] ? -1 : a[0] > b[0] ? 1 : 0;
			});
			this._sync();
		}
		forEach(cb, thisArg) {
			var snapshot = this._entries.slice();
			for (var i = 0; i < snapshot.length; i++) {
				cb.call(thisArg, snapshot[i][1], snapshot[i][0], this);
			}
		}
		keys() {
			var out = [];
			for (var i = 0; i < this._entries.length; i++) out.push(this._entries[i][0]);
			return out[Symbol.iterator]();
		}
		values() {
			var out = [];
			for (var i = 0; i < this._entries.length; i++) out.push(this._entries[i][1]);
			return out[Symbol.iterator]();
		}
		entries() {
			var out = [];
			for (var i = 0; i < this._entries.length; i++) {
				out.push([this._entries[i][0], this._entries[i][1]]);
			}
			return out[Symbol.iterator]();
		}
		get size() {
			return this._entries.length;
		}
		toString() {
			var parts = [];
			for (var i = 0; i < this._entries.length; i++) {
				parts.push(encodeQueryPart(this._entries[i][0]) + '=' + encodeQueryPart(this._entries[i][1]));
			}
			return parts.join('&');
		}
	}
	URLSearchParams.prototype[Symbol.iterator] = URLSearchParams.prototype.entries;

	class URL {
		constructor(input, base) {
			this._searchParams = null;
			this._apply(parseOrThrow(input, base));
		}
		_apply(p) {
			this._href = p.href;
			this._protocol = p.protocol;
			this._host = p.host;
			this._hostname = p.hostname;
			this._port = p.port;
			this._pathname = p.pathname;
			this._search = p.search;
			this._hash = p.hash;
			this._origin = p.origin;
			this._username = p.username;
			this._password = p.password;
			if (this._searchParams) {
				this._searchParams._entries = parseQuery(this._search);
			}
		}
		_setComponent(component, value) {
			var raw = __md_url_set(this._href, component, String(value));
			var r = JSON.parse(raw);
			if (r.err) return;
			this._apply(r.ok);
		}
		get href() { return this._href; }
		set href(v) { this._apply(parseOrThrow(v)); }
		get protocol() { return this._protocol; }
		set protocol(v) { this._setComponent('protocol', v); }
		get host() { return this._host; }
		set host(v) { this._setComponent('host', v); }
		get hostname() { return this._hostname; }
		set hostname(v) { this._setComponent('hostname', v); }
		get port() { return this._port; }
		set port(v) { this._setComponent('port', v); }
		get pathname() { return this._pathname; }
		set pathname(v) { this._setComponent('pathname', v); }
		get search() { return this._search; }
		set search(v) { this._setComponent('search', v); }
		get hash() { return this._hash; }
		set hash(v) { this._setComponent('hash', v); }
		get username() { return this._username; }
		set username(v) { this._setComponent('username', v); }
		get password() { return this._password; }
		set password(v) { this._setComponent('password', v); }
		get origin() { return this._origin; }
		get searchParams() {
			if (!this._searchParams) {
				var p = new URLSearchParams();
				p._url = this;
				p._entries = parseQuery(this._search);
				this._searchParams = p;
			}
			return this._searchParams;
		}
		toString() { return this._href; }
		toJSON() { return this._href; }
		static parse(input, base) {
			try {
				return new URL(input, base);
			} catch (e) {
				return null;
			}
		}
		static canParse(input, base) {
			try {
				new URL(input, base);
				return true;
			} catch (e) {
				return false;
			}
		}
	}

	globalThis.URL = URL;
	globalThis.URLSearchParams = URLSearchParams;
})();
`

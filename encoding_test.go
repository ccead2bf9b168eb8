package minideno

import "testing"

func TestBtoaAtobRoundTrip(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `btoa('hello')`, `"aGVsbG8="`)
	expectJSON(t, rt, `atob('aGVsbG8=')`, `"hello"`)
	expectJSON(t, rt, `atob(btoa('any latin1 éÿ'))`, `"any latin1 éÿ"`)

	// Binary strings: every code unit 0..255 survives the round trip.
	expectJSON(t, rt, `(function() {
		var s = '';
		for (var i = 0; i < 256; i++) s += String.fromCharCode(i);
		return atob(btoa(s)) === s;
	})()`, "true")
}

func TestBtoaRejectsNonLatin1(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		try {
			btoa('snowman ☃');
			return 'no error';
		} catch (e) {
			return [e instanceof TypeError, e.message.indexOf('Latin1') !== -1];
		}
	})()`, "[true,true]")
}

func TestAtobRejectsMalformedInput(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		var root = globalThis[Symbol.for('minideno.internal')];
		try {
			atob('!!!not base64!!!');
			return 'no error';
		} catch (e) {
			return [e.name, e instanceof root.errors.InvalidData];
		}
	})()`, `["InvalidData",true]`)
}

func TestAtobToleratesWhitespaceAndMissingPadding(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `atob(' aGVs\nbG8= ')`, `"hello"`)
	expectJSON(t, rt, `atob('aGVsbG8')`, `"hello"`)
}

func TestEncodingRequiresArgument(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		try { btoa(); return 'no error'; } catch (e) { return e instanceof TypeError; }
	})()`, "true")
	expectJSON(t, rt, `(function() {
		try { atob(); return 'no error'; } catch (e) { return e instanceof TypeError; }
	})()`, "true")
}

func TestEncodingRejectsNonStringInput(t *testing.T) {
	rt := newTestRuntime(t)
	for _, arg := range []string{"123", "null", "undefined", "{}", "['a']"} {
		expectJSON(t, rt, `(function() {
			try { btoa(`+arg+`); return 'no error'; } catch (e) { return e instanceof TypeError; }
		})()`, "true")
		expectJSON(t, rt, `(function() {
			try { atob(`+arg+`); return 'no error'; } catch (e) { return e instanceof TypeError; }
		})()`, "true")
	}
}

func TestTextEncoderDecoder(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `Array.from(new TextEncoder().encode('héllo'))`,
		"[104,195,169,108,108,111]")
	expectJSON(t, rt, `new TextDecoder().decode(new Uint8Array([104,195,169,108,108,111]))`,
		`"héllo"`)
	expectJSON(t, rt, `new TextDecoder().decode(new TextEncoder().encode('幸運 ✓ emoji 🎉'))`,
		`"幸運 ✓ emoji 🎉"`)
	expectJSON(t, rt, `new TextEncoder().encoding`, `"utf-8"`)
	expectJSON(t, rt, `(function() {
		try { new TextDecoder('latin1'); return 'no error'; } catch (e) { return e instanceof RangeError; }
	})()`, "true")
}

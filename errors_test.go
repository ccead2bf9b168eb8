package minideno

import "testing"

func TestErrorTaxonomyShape(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		var kinds = ['NotFound', 'PermissionDenied', 'ConnectionRefused',
			'ConnectionReset', 'ConnectionAborted', 'NotConnected', 'AddrInUse',
			'AddrNotAvailable', 'BrokenPipe', 'AlreadyExists', 'InvalidData',
			'TimedOut', 'Interrupted', 'WouldBlock', 'WriteZero', 'UnexpectedEof',
			'BadResource', 'Http', 'Busy', 'NotSupported', 'FilesystemLoop',
			'IsADirectory', 'NetworkUnreachable', 'NotADirectory'];
		return kinds.every(function(k) { return typeof Deno.errors[k] === 'function'; }) &&
			Object.keys(Deno.errors).length === kinds.length;
	})()`, "true")
}

func TestErrorInstancesCarryKindName(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		var e = new Deno.errors.NotFound('gone');
		return [e instanceof Error, e instanceof Deno.errors.NotFound,
			e.name, e.message];
	})()`, `[true,true,"NotFound","gone"]`)

	// Kinds are distinct classes.
	expectJSON(t, rt, `new Deno.errors.NotFound('x') instanceof Deno.errors.Busy`, "false")
}

func TestErrorNamespaceIsFrozen(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, "Object.isFrozen(Deno.errors)", "true")
	expectJSON(t, rt, "Object.isFrozen(Deno.errors.NotFound)", "true")
	expectJSON(t, rt, `(function() {
		try { Deno.errors.NotFound.prototype.hijacked = true; } catch (e) {}
		return typeof Deno.errors.NotFound.prototype.hijacked;
	})()`, `"undefined"`)
}

func TestNativeFailuresThrowTypedErrors(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		try {
			Deno.statSync('/definitely/not/there/at/all');
			return 'no error';
		} catch (e) {
			return [e.name, e instanceof Deno.errors.NotFound, e instanceof Error];
		}
	})()`, `["NotFound",true,true]`)
}

func TestArgumentErrorsAreTypeErrors(t *testing.T) {
	rt := newTestRuntime(t)
	expectJSON(t, rt, `(function() {
		try {
			Deno.readFileSync(42);
			return 'no error';
		} catch (e) {
			return e instanceof TypeError;
		}
	})()`, "true")
}

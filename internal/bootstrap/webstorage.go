package bootstrap

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/minideno/minideno/internal/core"

	// Pure-Go SQLite driver for database/sql (backs localStorage).
	_ "github.com/glebarez/sqlite"
)

// SetupWebStorage installs a SQLite-backed localStorage. An empty storage
// path means an in-memory database scoped to the runtime's lifetime. The
// returned closer releases the database.
func SetupWebStorage(rt core.JSRuntime, cfg core.RuntimeConfig) (func() error, error) {
	if err := requireBridge(rt, "storage"); err != nil {
		return nil, err
	}

	dsn := cfg.StoragePath
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening storage database: %w", err)
	}
	// The in-memory database vanishes if the pool opens a second
	// connection; keep exactly one.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS webstorage (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating storage table: %w", err)
	}

	if err := rt.RegisterFunc("__md_storage", func(op, key, value string) string {
		return storageDispatch(db, op, key, value)
	}); err != nil {
		db.Close()
		return nil, err
	}

	if err := rt.Eval(storageJS); err != nil {
		db.Close()
		return nil, err
	}
	return db.Close, nil
}

func storageDispatch(db *sql.DB, op, key, value string) string {
	switch op {
	case "get":
		var v string
		err := db.QueryRow(`SELECT value FROM webstorage WHERE key = ?`, key).Scan(&v)
		if err == sql.ErrNoRows {
			return okJSON(nil)
		}
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(v)

	case "set":
		_, err := db.Exec(`INSERT INTO webstorage (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "remove":
		if _, err := db.Exec(`DELETE FROM webstorage WHERE key = ?`, key); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "clear":
		if _, err := db.Exec(`DELETE FROM webstorage`); err != nil {
			return errFromGo(err)
		}
		return okJSON(nil)

	case "key":
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 {
			return okJSON(nil)
		}
		var k string
		err = db.QueryRow(`SELECT key FROM webstorage ORDER BY rowid LIMIT 1 OFFSET ?`, index).Scan(&k)
		if err == sql.ErrNoRows {
			return okJSON(nil)
		}
		if err != nil {
			return errFromGo(err)
		}
		return okJSON(k)

	case "length":
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM webstorage`).Scan(&n); err != nil {
			return errFromGo(err)
		}
		return okJSON(n)
	}
	return errJSON(core.KindNotSupported, "unknown storage operation "+op)
}

const storageJS = `
(function() {
	var root = globalThis[Symbol.for("minideno.internal")];
	function call(op, key, value) {
		return root.unwrap(__md_storage(op, key, value));
	}
	class Storage {
		getItem(key) { return call('get', String(key), ''); }
		setItem(key, value) { call('set', String(key), String(value)); }
		removeItem(key) { call('remove', String(key), ''); }
		clear() { call('clear', '', ''); }
		key(index) { return call('key', String(index), ''); }
		get length() { return call('length', '', ''); }
	}
	root.storage.local = new Storage();
	globalThis.Storage = Storage;
	globalThis.localStorage = root.storage.local;
})();
`

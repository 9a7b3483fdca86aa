package datasource

import (
	_ "modernc.org/sqlite"
)

func sqliteDSN(cfg Config) string {
	return cfg.Path
}

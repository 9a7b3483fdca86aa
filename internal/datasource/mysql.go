package datasource

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

func mysqlDSN(cfg Config) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database,
	)
}

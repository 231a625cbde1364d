package data

import (
	"os"
	"strings"
)

// GetMySQLDSN returns the MySQL DSN configured via environment. The settings
// table is optional, so an unset DSN is reported rather than treated as fatal.
func GetMySQLDSN() (string, bool) {
	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	return dsn, dsn != ""
}

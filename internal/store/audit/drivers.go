package audit

import (
	_ "github.com/lib/pq"           // registers the "postgres" sql.DB driver
	_ "modernc.org/sqlite"          // registers the "sqlite" sql.DB driver
)

package kv

import "errors"

var (
	ErrDBClosed    = errors.New("kv: database is closed")
	ErrKeyNotFound = errors.New("kv: key not found")
)

package utils

import (
	"database/sql"
	"time"
)

func NullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func NullTimeToEmptyString(nt sql.NullTime) string {
	if nt.Valid {
		return nt.Time.Local().Format("2006-01-02, 15:04:05")
	}
	return ""
}

func NullTimeToPtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		t := nt.Time
		return &t
	}
	return nil
}

func PtrTimeToString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("2006-01-02, 15:04:05")
}

func NullInt64ToUint64Ptr(n sql.NullInt64) *uint64 {
	if n.Valid {
		v := uint64(n.Int64)
		return &v
	}
	return nil
}

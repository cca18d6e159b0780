package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
)

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = gorm.ErrInvalidDB

func NewGorm(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(normalizeMySQLDSN(o.DSN, o.Username, o.Password))
	case "sqlite":
		// 本地开发 / 测试用
		dial = sqlite.Open(o.DSN)
	default:
		return nil, ErrUnsupportedDriver
	}
	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	db = db.Session(&gorm.Session{
		PrepareStmt:            true,
		SkipDefaultTransaction: true, // 结账等需要事务的地方手动开 Tx
	})
	return db, nil
}

// normalizeMySQLDSN 兼容 mysql:// URL 形式的 DSN；
// 已经是 go-sql-driver 形式（user:pass@tcp(...)）的原样返回
func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimSpace(input)
	if in == "" || !strings.HasPrefix(in, "mysql://") {
		return in
	}
	rest := strings.TrimPrefix(in, "mysql://")

	var cred, hostAndPath string
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		cred, hostAndPath = rest[:at], rest[at+1:]
	} else {
		hostAndPath = rest
	}

	user, pass := cred, ""
	if colon := strings.Index(cred, ":"); colon >= 0 {
		user, pass = cred[:colon], cred[colon+1:]
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	hostport, dbAndQuery := hostAndPath, ""
	if slash := strings.Index(hostAndPath, "/"); slash >= 0 {
		hostport, dbAndQuery = hostAndPath[:slash], hostAndPath[slash+1:]
	}
	dbname, query := dbAndQuery, ""
	if q := strings.Index(dbAndQuery, "?"); q >= 0 {
		dbname, query = dbAndQuery[:q], dbAndQuery[q+1:]
	}
	if query == "" {
		query = "parseTime=true&charset=utf8mb4"
	} else {
		if !strings.Contains(query, "parseTime=") {
			query += "&parseTime=true"
		}
		if !strings.Contains(query, "charset=") {
			query += "&charset=utf8mb4"
		}
	}

	out := ""
	if user != "" {
		out = user
		if pass != "" {
			out += ":" + pass
		}
		out += "@"
	}
	return out + "tcp(" + hostport + ")/" + dbname + "?" + query
}

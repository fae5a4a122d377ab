package models

import (
	"testing"

	gormlogger "gorm.io/gorm/logger"
)

func TestWithSQLitePragmas(t *testing.T) {
	cases := map[string]string{
		"./db/duomart.db":                 "./db/duomart.db?_pragma=busy_timeout(5000)",
		"file:x?mode=memory&cache=shared": "file:x?mode=memory&cache=shared&_pragma=busy_timeout(5000)",
		"a.db?_pragma=busy_timeout(100)":  "a.db?_pragma=busy_timeout(100)",
	}
	for in, want := range cases {
		if got := withSQLitePragmas(in); got != want {
			t.Fatalf("withSQLitePragmas(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDialectorForRejectsUnknownDriver(t *testing.T) {
	if _, err := dialectorFor("mysql", "dsn"); err == nil {
		t.Fatalf("mysql should be rejected")
	}
	d, err := dialectorFor("pgx", "host=localhost")
	if err != nil || d.Name() != "postgres" {
		t.Fatalf("pgx alias should map to postgres, got %v %v", d, err)
	}
}

func TestQueryLoggerLevels(t *testing.T) {
	l := newQueryLogger("", 0)
	if l.level != gormlogger.Warn || l.slow != defaultSlowQuery {
		t.Fatalf("unexpected defaults: %+v", l)
	}
	silent := l.LogMode(gormlogger.Silent).(*queryLogger)
	if silent.level != gormlogger.Silent || l.level != gormlogger.Warn {
		t.Fatalf("LogMode should return a copy")
	}
	if newQueryLogger("info", 50).slow.Milliseconds() != 50 {
		t.Fatalf("slow threshold should follow config")
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(DBOptions{DSN: "file:models_open?mode=memory&cache=shared", LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	sqlDB, _ := db.DB()
	defer func() { _ = sqlDB.Close() }()

	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		t.Fatalf("migrated tables should survive between statements: %v", err)
	}
	if sqlDB.Stats().Idle == 0 {
		t.Fatalf("zero pool config should keep idle connections")
	}
}

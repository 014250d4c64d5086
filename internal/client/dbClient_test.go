package client

import "testing"

func TestWithForeignKeys(t *testing.T) {
	cases := map[string]string{
		"shop.db":                         "shop.db?_foreign_keys=on",
		"file:x?mode=memory&cache=shared": "file:x?mode=memory&cache=shared&_foreign_keys=on",
		"shop.db?_foreign_keys=off":       "shop.db?_foreign_keys=off",
	}
	for in, want := range cases {
		if got := withForeignKeys(in); got != want {
			t.Errorf("withForeignKeys(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitDBClientSQLite(t *testing.T) {
	db, err := InitDBClient("sqlite:file:dbclient_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	var enabled int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatal("foreign keys are not enforced")
	}
}

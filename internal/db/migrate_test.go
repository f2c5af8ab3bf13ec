package db

import "testing"

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	if err != nil {
		t.Fatalf("MigrationNames: %v", err)
	}
	if len(names) == 0 || names[0] != "001_init.sql" {
		t.Errorf("names = %v", names)
	}
}

package postgres

import (
	"reflect"
	"testing"
)

func TestConnection_HostFlags(t *testing.T) {
	conn := Connection{Host: "db.internal", Port: 5432, User: "backup"}
	got := conn.hostFlags()
	want := []string{"-h", "db.internal", "-p", "5432", "-U", "backup"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hostFlags() = %v, want %v", got, want)
	}
}

func TestConnection_Env(t *testing.T) {
	conn := Connection{Password: "s3cret"}
	got := conn.env()
	want := []string{"PGSSLMODE=require", "PGPASSWORD=s3cret"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("env() = %v, want %v", got, want)
	}
}

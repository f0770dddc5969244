package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (Business{}).TableName(); got != "businesses" {
		t.Fatalf("unexpected Business table name: %s", got)
	}
	if got := (BusinessDocument{}).TableName(); got != "business_documents" {
		t.Fatalf("unexpected BusinessDocument table name: %s", got)
	}
	if got := (NotificationTemplate{}).TableName(); got != "notification_templates" {
		t.Fatalf("unexpected NotificationTemplate table name: %s", got)
	}
	if got := (NotificationPreference{}).TableName(); got != "notification_preferences" {
		t.Fatalf("unexpected NotificationPreference table name: %s", got)
	}
}

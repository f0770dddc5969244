package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createBusinessTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE businesses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		display_name TEXT NOT NULL,
		contact_email TEXT NOT NULL,
		phone TEXT,
		verification_status TEXT NOT NULL,
		verification_notes TEXT,
		application_submitted_at DATETIME NOT NULL,
		approved_at DATETIME,
		approved_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE business_documents (
		id TEXT PRIMARY KEY,
		business_id TEXT NOT NULL,
		document_type TEXT NOT NULL,
		verification_status TEXT NOT NULL,
		rejection_reason TEXT,
		verified_by TEXT,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTemplateTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE notification_templates (
		id TEXT PRIMARY KEY,
		key TEXT UNIQUE NOT NULL,
		email_subject TEXT NOT NULL,
		email_body_html TEXT NOT NULL,
		email_body_text TEXT NOT NULL,
		sms_body TEXT,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPreferenceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE notification_preferences (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		email_enabled BOOLEAN NOT NULL DEFAULT 1,
		sms_enabled BOOLEAN NOT NULL DEFAULT 0,
		email_welcome BOOLEAN,
		email_booking_accepted BOOLEAN,
		email_booking_completed BOOLEAN,
		email_booking_reminder BOOLEAN,
		email_new_booking BOOLEAN,
		email_booking_cancelled BOOLEAN,
		email_booking_rescheduled BOOLEAN,
		email_business_verification BOOLEAN,
		sms_booking_accepted BOOLEAN,
		sms_booking_completed BOOLEAN,
		sms_booking_reminder BOOLEAN,
		sms_new_booking BOOLEAN,
		sms_booking_cancelled BOOLEAN,
		sms_booking_rescheduled BOOLEAN,
		sms_business_verification BOOLEAN,
		quiet_hours_enabled BOOLEAN NOT NULL DEFAULT 0,
		quiet_hours_start TEXT,
		quiet_hours_end TEXT,
		timezone TEXT,
		notification_email TEXT,
		notification_phone TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

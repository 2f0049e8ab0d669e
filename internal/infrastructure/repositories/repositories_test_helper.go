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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		email TEXT NOT NULL,
		username TEXT,
		full_name TEXT,
		bio TEXT,
		phone TEXT,
		date_of_birth DATETIME,
		country TEXT,
		city TEXT,
		address TEXT,
		avatar TEXT,
		role TEXT NOT NULL DEFAULT 'USER',
		is_seller BOOLEAN NOT NULL DEFAULT 0,
		seller_verified BOOLEAN NOT NULL DEFAULT 0,
		seller_verification_date DATETIME,
		shop_name TEXT,
		shop_description TEXT,
		tax_id TEXT,
		bank_account_name TEXT,
		bank_account_number TEXT,
		bank_name TEXT,
		bank_verified BOOLEAN NOT NULL DEFAULT 0,
		bank_verification_status TEXT NOT NULL DEFAULT 'PENDING',
		show_coin_balance BOOLEAN NOT NULL DEFAULT 1,
		show_join_date BOOLEAN NOT NULL DEFAULT 1,
		show_email BOOLEAN NOT NULL DEFAULT 0,
		show_phone BOOLEAN NOT NULL DEFAULT 0,
		total_sales INTEGER NOT NULL DEFAULT 0,
		total_purchases INTEGER NOT NULL DEFAULT 0,
		rating REAL NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		is_suspended BOOLEAN NOT NULL DEFAULT 0,
		suspension_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createSellerApplicationTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE seller_applications (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		shop_name TEXT NOT NULL,
		shop_description TEXT NOT NULL,
		business_type TEXT NOT NULL,
		business_address TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		website TEXT,
		bank_account_name TEXT NOT NULL,
		bank_account_number TEXT NOT NULL,
		bank_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'PENDING',
		reviewed_by TEXT,
		reviewed_at DATETIME,
		rejection_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

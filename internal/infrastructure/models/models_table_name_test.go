package models

import "testing"

func TestTableNames(t *testing.T) {
	if got := (UserProfile{}).TableName(); got != "user_profiles" {
		t.Fatalf("unexpected UserProfile table name: %s", got)
	}
	if got := (SellerApplication{}).TableName(); got != "seller_applications" {
		t.Fatalf("unexpected SellerApplication table name: %s", got)
	}
}

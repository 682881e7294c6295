package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestDeductCreditQuery_OnlyMatchesPositiveBalance(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	filter, update := deductCreditQuery("c1", at)

	if filter["_id"] != "c1" {
		t.Fatalf("filter id = %v", filter["_id"])
	}
	cond, ok := filter["tryon_credits"].(bson.M)
	if !ok || cond["$gt"] != 0 {
		t.Fatalf("filter must require tryon_credits > 0, got %v", filter["tryon_credits"])
	}

	inc, ok := update["$inc"].(bson.M)
	if !ok || inc["tryon_credits"] != -1 || inc["tryon_credits_used"] != 1 {
		t.Fatalf("unexpected $inc %v", update["$inc"])
	}
	set, ok := update["$set"].(bson.M)
	if !ok || set["last_tryon_at"] != at || set["updated_at"] != at {
		t.Fatalf("unexpected $set %v", update["$set"])
	}
	if len(update) != 2 {
		t.Fatalf("update must only $inc and $set, got %v", update)
	}
}

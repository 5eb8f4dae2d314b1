package services

import (
	"context"
	"strings"
	"testing"

	"chirp_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestFetchDoesNotResurrectDeletedNotification(t *testing.T) {
	// A fetch may observe a notification that a concurrent delete already
	// removed. The mark-read write must be guarded, not an upsert, and the
	// lost guard must not fail the fetch.
	unread, err := attributevalue.MarshalMap(models.Notification{
		RecipientID:    "u1",
		NotificationID: "n1",
		Content:        "@bob followed you",
		IsRead:         false,
	})
	if err != nil {
		t.Fatal(err)
	}

	store := &fakeStore{
		queryItemsWithOptions: func(_ string, _ string) ([]map[string]types.AttributeValue, error) {
			return []map[string]types.AttributeValue{unread}, nil
		},
		updateItemConditional: func(_, _, condition string, _ map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
			if !strings.Contains(condition, "attribute_exists") {
				t.Fatalf("mark-read must require the item to exist, condition: %q", condition)
			}
			return nil, ErrConditionFailed
		},
	}
	notifications := &NotificationService{Dynamo: store, Cache: &CacheService{}}

	list, err := notifications.GetForRecipient(context.Background(), "u1")
	if err != nil {
		t.Fatalf("a deleted notification must not fail the fetch: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if store.updateCalls != 0 {
		t.Fatalf("mark-read used an unconditional update %d times", store.updateCalls)
	}
	if store.updateConditionalCalls != 1 {
		t.Fatalf("updateConditionalCalls = %d, want 1", store.updateConditionalCalls)
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chirp_server/models"
	"chirp_server/socket"
	"chirp_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// NotificationService owns the notification lifecycle:
// unread -> read on the recipient's first fetch -> deleted by a bulk delete
// that only touches read notifications.
type NotificationService struct {
	Dynamo Store
	Cache  *CacheService
	Hub    *socket.Hub
}

func notificationsFilter(recipientID string) map[string]string {
	return map[string]string{"resource": "notifications", "recipientId": recipientID}
}

// Create stores an unread notification and pushes it to the recipient's
// connection if they are online.
func (ns *NotificationService) Create(ctx context.Context, recipientID, content string) error {
	if recipientID == "" || content == "" {
		return errors.New("recipientId and content are required")
	}

	notification := models.Notification{
		RecipientID:    recipientID,
		NotificationID: utils.SortKey(time.Now(), uuid.New().String()),
		Content:        content,
		IsRead:         false,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	if err := ns.Dynamo.PutItem(ctx, models.NotificationsTable, notification); err != nil {
		return err
	}

	ns.Cache.Invalidate(ctx, notificationsFilter(recipientID))

	if ns.Hub != nil {
		ns.Hub.Emit(recipientID, models.EventNotification, map[string]string{
			"notificationId": notification.NotificationID,
			"content":        notification.Content,
		})
	}
	return nil
}

// GetForRecipient returns the recipient's notifications, newest first, and
// flips every unread one to read as a side effect of the fetch. The returned
// list shows the state as fetched, so a notification is seen unread exactly
// once.
func (ns *NotificationService) GetForRecipient(ctx context.Context, recipientID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := ns.Cache.Fetch(ctx, notificationsFilter(recipientID), models.NotificationsCacheTTL, &notifications,
		func(ctx context.Context) (interface{}, error) {
			items, err := ns.Dynamo.QueryItemsWithOptions(ctx, models.NotificationsTable,
				"recipientId = :recipientId",
				map[string]types.AttributeValue{
					":recipientId": &types.AttributeValueMemberS{Value: recipientID},
				},
				nil, 100, true)
			if err != nil {
				return nil, err
			}

			loaded := make([]models.Notification, 0, len(items))
			if err := attributevalue.UnmarshalListOfMaps(items, &loaded); err != nil {
				return nil, fmt.Errorf("failed to parse notifications: %w", err)
			}
			return loaded, nil
		})
	if err != nil {
		return nil, err
	}

	// First retrieval transitions unread -> read. The existence guard keeps
	// a stale cached entry from upserting a notification that a concurrent
	// delete already removed.
	for _, n := range notifications {
		if n.IsRead {
			continue
		}
		_, err := ns.Dynamo.UpdateItemConditional(ctx, models.NotificationsTable,
			"SET isRead = :true, updatedAt = :updatedAt",
			"attribute_exists(recipientId)",
			notificationKey(recipientID, n.NotificationID),
			map[string]types.AttributeValue{
				":true":      &types.AttributeValueMemberBOOL{Value: true},
				":updatedAt": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
			},
			nil)
		if err != nil && !errors.Is(err, ErrConditionFailed) {
			log.Printf("⚠️ Failed to mark notification %s read: %v", n.NotificationID, err)
		}
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	return notifications, nil
}

// BulkDelete removes the given notifications, skipping any that are still
// unread: the delete predicate is scoped to isRead = true, so an unread id
// is a no-op. Returns how many were actually deleted.
func (ns *NotificationService) BulkDelete(ctx context.Context, recipientID string, notificationIDs []string) (int, error) {
	deleted := 0
	for _, id := range notificationIDs {
		err := ns.Dynamo.DeleteItemConditional(ctx, models.NotificationsTable,
			notificationKey(recipientID, id),
			"isRead = :true",
			map[string]types.AttributeValue{
				":true": &types.AttributeValueMemberBOOL{Value: true},
			})
		if err != nil {
			if errors.Is(err, ErrConditionFailed) {
				continue
			}
			return deleted, err
		}
		deleted++
	}

	if deleted > 0 {
		ns.Cache.Invalidate(ctx, notificationsFilter(recipientID))
	}
	return deleted, nil
}

func notificationKey(recipientID, notificationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"recipientId":    &types.AttributeValueMemberS{Value: recipientID},
		"notificationId": &types.AttributeValueMemberS{Value: notificationID},
	}
}

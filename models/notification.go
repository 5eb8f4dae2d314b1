package models

// Notification is created by actions elsewhere (comment, follow, like) and
// flips unread -> read on the recipient's first fetch. Bulk delete only
// removes notifications that are already read.
type Notification struct {
	RecipientID    string `dynamodbav:"recipientId" json:"recipientId"`
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"`
	Content        string `dynamodbav:"content" json:"content"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"

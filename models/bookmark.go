package models

// BookmarkSet is one item per user, created lazily on first bookmark.
type BookmarkSet struct {
	UserID    string   `dynamodbav:"userId" json:"userId"`
	TweetIDs  []string `dynamodbav:"tweetIds,stringset,omitempty" json:"tweetIds"`
	UpdatedAt string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// BookmarksTable is the DynamoDB table name for bookmark sets
const BookmarksTable = "Bookmarks"

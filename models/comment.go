package models

// Comment belongs to a tweet. AuthorName and AuthorImage are snapshots taken
// at creation time; they intentionally do not reflect later profile edits.
type Comment struct {
	TweetID     string   `dynamodbav:"tweetId" json:"tweetId"`
	CommentID   string   `dynamodbav:"commentId" json:"commentId"`
	UserID      string   `dynamodbav:"userId" json:"userId"`
	AuthorName  string   `dynamodbav:"authorName" json:"authorName"`
	AuthorImage string   `dynamodbav:"authorImage,omitempty" json:"authorImage,omitempty"`
	Content     string   `dynamodbav:"content" json:"content"`
	Media       string   `dynamodbav:"media,omitempty" json:"media,omitempty"`
	Likers      []string `dynamodbav:"likers,stringset,omitempty" json:"likers,omitempty"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CommentsTable is the DynamoDB table name for comments
const CommentsTable = "Comments"

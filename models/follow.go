package models

// FollowEdge is one directed edge of the follow graph, stored as an
// adjacency list: partition key is the follower, sort key the followed user.
// The reverse GSI answers "who follows X" with a single query.
type FollowEdge struct {
	UserID     string `dynamodbav:"userId" json:"userId"`
	FollowedID string `dynamodbav:"followedId" json:"followedId"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// FollowsTable is the DynamoDB table name for follow edges
const FollowsTable = "Follows"

// FollowersIndex is the reverse GSI (followedId -> userId)
const FollowersIndex = "followers-index"

package models

import "time"

// ✅ Socket event names emitted by the server
const (
	EventCommentAdded          = "comment-added"
	EventIncrementCommentCount = "increment-comment-count"
	EventUpdateCommentLikes    = "update-comment-likes"
	EventNotification          = "notification"
	EventUpdateUsername        = "update-username"
	EventUpdateProfileImage    = "update-profile-image"
	EventTweetCreated          = "tweet-created"
	EventUpdateTweetLikes      = "update-tweet-likes"
	EventRetweeted             = "retweeted"
	EventBookmark              = "bookmark"
	EventPollVote              = "poll-vote"
	EventPollClose             = "poll-close"
	EventFollow                = "follow"
)

// ✅ Cache TTLs per resource type
const (
	CommentsCacheTTL      = 60 * time.Second
	NotificationsCacheTTL = 60 * time.Second
	SearchCacheTTL        = 10 * time.Second
)

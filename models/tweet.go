package models

// Tweet is the primary feed entity. Poll and retweet references are set at
// creation time and never change afterwards.
type Tweet struct {
	TweetID     string   `dynamodbav:"tweetId" json:"tweetId"`
	UserID      string   `dynamodbav:"userId" json:"userId"`
	AuthorName  string   `dynamodbav:"authorName" json:"authorName"`
	AuthorImage string   `dynamodbav:"authorImage,omitempty" json:"authorImage,omitempty"`
	Content     string   `dynamodbav:"content" json:"content"`
	Media       string   `dynamodbav:"media,omitempty" json:"media,omitempty"`
	Poll        *Poll    `dynamodbav:"poll,omitempty" json:"poll,omitempty"`
	RetweetOf   string   `dynamodbav:"retweetOf,omitempty" json:"retweetOf,omitempty"`
	Hashtags    []string `dynamodbav:"hashtags,omitempty" json:"hashtags,omitempty"`
	Likers      []string `dynamodbav:"likers,stringset,omitempty" json:"likers,omitempty"`

	NumComments int `dynamodbav:"numComments" json:"numComments"`
	NumLikes    int `dynamodbav:"numLikes" json:"numLikes"`
	NumRetweets int `dynamodbav:"numRetweets" json:"numRetweets"`
	NumViews    int `dynamodbav:"numViews" json:"numViews"`

	// FeedBucket is a constant partition value so the feed GSI can serve the
	// global timeline as a single Query in reverse chronological order.
	FeedBucket string `dynamodbav:"feedBucket" json:"-"`
	SortKey    string `dynamodbav:"sortKey" json:"-"`

	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// MaxTweetLength is the content limit for tweets and comments.
const MaxTweetLength = 140

// FeedPageSize is the fixed page size for feed endpoints.
const FeedPageSize = 20

// TweetsTable is the DynamoDB table name for tweets
const TweetsTable = "Tweets"

// GlobalFeedBucket is the single partition value of the feed GSI
const GlobalFeedBucket = "TWEETS"

// FeedIndex is the GSI serving the global timeline (feedBucket, sortKey)
const FeedIndex = "feed-index"

// AuthorIndex is the GSI serving per-author timelines (userId, sortKey)
const AuthorIndex = "author-index"

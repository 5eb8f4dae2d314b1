package models

// User is the single aggregate for identity, credentials and profile.
// Email and username uniqueness is enforced with claim items (see
// EmailClaimPrefix/UsernameClaimPrefix) written in the same table with a
// conditional put, so signup either claims both or fails with a conflict.
type User struct {
	UserID       string `dynamodbav:"userId" json:"userId"`
	Email        string `dynamodbav:"email" json:"email"`
	Username     string `dynamodbav:"username" json:"username"`
	PasswordHash string `dynamodbav:"passwordHash" json:"-"`
	DisplayName  string `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`
	ProfileImage string `dynamodbav:"profileImage,omitempty" json:"profileImage,omitempty"`
	Bio          string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`

	NumFollowers int `dynamodbav:"numFollowers" json:"numFollowers"`
	NumFollowing int `dynamodbav:"numFollowing" json:"numFollowing"`

	// ProfileBucket is a constant partition value and UsernameLower the range
	// key of the username GSI, so prefix search is a begins_with query.
	ProfileBucket string `dynamodbav:"profileBucket" json:"-"`
	UsernameLower string `dynamodbav:"usernameLower" json:"-"`

	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PublicProfile strips credential fields for API responses.
func (u User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"userId":       u.UserID,
		"username":     u.Username,
		"displayName":  u.DisplayName,
		"profileImage": u.ProfileImage,
		"bio":          u.Bio,
		"numFollowers": u.NumFollowers,
		"numFollowing": u.NumFollowing,
	}
}

// UsersTable is the DynamoDB table name for users and uniqueness claims
const UsersTable = "Users"

// UsernameIndex is the GSI for username prefix search (profileBucket, usernameLower)
const UsernameIndex = "username-index"

// UserProfileBucket is the single partition value of the username GSI
const UserProfileBucket = "USER"

// Claim item key prefixes stored in UsersTable
const (
	EmailClaimPrefix    = "EMAIL#"
	UsernameClaimPrefix = "USERNAME#"
)

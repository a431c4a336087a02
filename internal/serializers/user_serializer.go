package serializers

import (
	"network/internal/models"
	"network/internal/repositories"
)

// UserResponse is the JSON shape of a serialized user. The username
// lists come back in query order; callers must not assume they are
// sorted.
type UserResponse struct {
	Username       string   `json:"username"`
	Followers      []string `json:"followers"`
	FollowersCount int64    `json:"followers_count"`
	Following      []string `json:"following"`
	FollowingCount int64    `json:"following_count"`
}

// UserSerializer renders users with their follower and following lists
type UserSerializer struct {
	followRepository repositories.FollowRepository
}

// NewUserSerializer creates a new UserSerializer
func NewUserSerializer(followRepo repositories.FollowRepository) *UserSerializer {
	return &UserSerializer{followRepository: followRepo}
}

// Serialize renders one user. No viewer context is needed.
func (s *UserSerializer) Serialize(user *models.User) (*UserResponse, error) {
	followers, err := s.followRepository.GetFollowers(user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepository.GetFollowing(user.ID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{
		Username:       user.Username,
		Followers:      usernames(followers),
		FollowersCount: int64(len(followers)),
		Following:      usernames(following),
		FollowingCount: int64(len(following)),
	}, nil
}

func usernames(users []models.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return names
}

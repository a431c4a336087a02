package serializers

import (
	"network/internal/models"
	"network/internal/repositories"
)

// TimestampFormat is the textual format every serialized timestamp uses.
// Clients parse this exact pattern, so it is part of the contract.
const TimestampFormat = "Jan 02 2006, 03:04 PM"

// RemovedUserName is shown in place of an author that was deleted or
// deactivated.
const RemovedUserName = "user removed"

// PostResponse is the JSON shape of a serialized post
type PostResponse struct {
	ID        uint              `json:"id"`
	User      string            `json:"user"`
	Body      string            `json:"body"`
	Likes     int64             `json:"likes"`
	Timestamp string            `json:"timestamp"`
	Comments  []CommentResponse `json:"comments"`
	Liked     bool              `json:"liked"`
}

// CommentResponse is the reduced shape used for comments nested in a
// post. Comments do not carry their own comments.
type CommentResponse struct {
	Body      string `json:"body"`
	User      string `json:"user"`
	Likes     int64  `json:"likes"`
	Timestamp string `json:"timestamp"`
}

// DisplayName resolves the name shown for a post's author: the username
// when the author still exists and is active, RemovedUserName otherwise.
func DisplayName(u *models.User) string {
	if u != nil && u.IsActive {
		return u.Username
	}
	return RemovedUserName
}

// PostSerializer renders posts to their JSON shape, resolving like
// counts and the viewer-relative liked flag through the like repository.
type PostSerializer struct {
	likeRepository repositories.LikeRepository
}

// NewPostSerializer creates a new PostSerializer
func NewPostSerializer(likeRepo repositories.LikeRepository) *PostSerializer {
	return &PostSerializer{likeRepository: likeRepo}
}

// Serialize renders one post with its comments. The viewer may be nil,
// in which case liked is always false.
func (s *PostSerializer) Serialize(post *models.Post, viewer *models.User) (*PostResponse, error) {
	likes, err := s.likeRepository.GetLikesCountByPostID(post.ID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewer != nil {
		liked, err = s.likeRepository.HasUserLikedPost(post.ID, viewer.ID)
		if err != nil {
			return nil, err
		}
	}

	comments := make([]CommentResponse, 0, len(post.Comments))
	for i := range post.Comments {
		comment, err := s.serializeComment(&post.Comments[i])
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return &PostResponse{
		ID:        post.ID,
		User:      DisplayName(post.User),
		Body:      post.Body,
		Likes:     likes,
		Timestamp: post.CreatedAt.Format(TimestampFormat),
		Comments:  comments,
		Liked:     liked,
	}, nil
}

// SerializeMany renders a slice of posts in order, all with the same viewer
func (s *PostSerializer) SerializeMany(posts []models.Post, viewer *models.User) ([]PostResponse, error) {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		resp, err := s.Serialize(&posts[i], viewer)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *PostSerializer) serializeComment(comment *models.Post) (CommentResponse, error) {
	likes, err := s.likeRepository.GetLikesCountByPostID(comment.ID)
	if err != nil {
		return CommentResponse{}, err
	}
	return CommentResponse{
		Body:      comment.Body,
		User:      DisplayName(comment.User),
		Likes:     likes,
		Timestamp: comment.CreatedAt.Format(TimestampFormat),
	}, nil
}

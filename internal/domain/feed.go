package domain

import (
	"context"
	"time"
)

type Tweet struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	Likes     []string  `json:"likes"`
	SharedBy  []string  `json:"shared_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasMember reports whether userID is in the given set of the tweet.
func (t *Tweet) HasMember(set TweetSet, userID string) bool {
	members := t.Likes
	if set == TweetShares {
		members = t.SharedBy
	}
	for _, id := range members {
		if id == userID {
			return true
		}
	}
	return false
}

// TweetSet names a per-user membership set stored on a tweet.
type TweetSet string

const (
	TweetLikes  TweetSet = "likes"
	TweetShares TweetSet = "sharedBy"
)

type TweetView struct {
	Tweet
	Author   *UserSummary `json:"author,omitempty"`
	Comments []string     `json:"comments"`
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author_id"`
	TweetID   string    `json:"tweet_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CommentView struct {
	Comment
	Author *UserSummary `json:"author,omitempty"`
}

// FeedActivity lists the feed entities a user owns or is a member of.
type FeedActivity struct {
	UserID      string   `json:"user_id"`
	Tweets      []string `json:"tweets"`
	Likes       []string `json:"likes"`
	SharedPosts []string `json:"shared_posts"`
	Comments    []string `json:"comments"`
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *Tweet) error
	GetByID(ctx context.Context, id string) (*Tweet, error)
	// Fetch lists tweets newest first; an empty authorID lists all tweets
	Fetch(ctx context.Context, authorID string) ([]Tweet, error)
	UpdateContent(ctx context.Context, id, content string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// AddMember adds userID to the set and reports false when it was already present
	AddMember(ctx context.Context, id string, set TweetSet, userID string) (bool, error)
	// RemoveMember removes userID from the set and reports false when it was absent
	RemoveMember(ctx context.Context, id string, set TweetSet, userID string) (bool, error)
	ListIDsByMember(ctx context.Context, set TweetSet, userID string) ([]string, error)
	ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id string) (*Comment, error)
	UpdateContent(ctx context.Context, id, content string, at time.Time) error
	Delete(ctx context.Context, id string) error
	FetchByTweet(ctx context.Context, tweetID string) ([]Comment, error)
	DeleteByTweet(ctx context.Context, tweetID string) (int64, error)
	ListIDsByTweets(ctx context.Context, tweetIDs []string) (map[string][]string, error)
	ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
}

type FeedUsecase interface {
	CreateTweet(ctx context.Context, actor Actor, content string) (*TweetView, error)
	UpdateTweet(ctx context.Context, actor Actor, tweetID, content string) (*TweetView, error)
	DeleteTweet(ctx context.Context, actor Actor, tweetID string) error
	GetAllTweets(ctx context.Context) ([]TweetView, error)
	GetTweetByID(ctx context.Context, tweetID string) (*TweetView, error)
	GetAllTweetsOfUser(ctx context.Context, userID string) ([]TweetView, error)
	LikeTweet(ctx context.Context, actor Actor, tweetID string) (*TweetView, error)
	UnlikeTweet(ctx context.Context, actor Actor, tweetID string) (*TweetView, error)
	GetLikesByTweet(ctx context.Context, tweetID string) ([]UserSummary, error)
	ShareTweet(ctx context.Context, actor Actor, tweetID string) (*TweetView, error)
	UnshareTweet(ctx context.Context, actor Actor, tweetID string) (*TweetView, error)
	AddComment(ctx context.Context, actor Actor, tweetID, content string) (*CommentView, error)
	UpdateComment(ctx context.Context, actor Actor, commentID, content string) (*CommentView, error)
	DeleteComment(ctx context.Context, actor Actor, commentID string) error
	GetCommentsByTweet(ctx context.Context, tweetID string) ([]CommentView, error)
	GetUserActivity(ctx context.Context, userID string) (*FeedActivity, error)
}

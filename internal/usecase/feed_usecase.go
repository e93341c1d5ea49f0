package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"
)

type feedUsecase struct {
	tweetRepo   domain.TweetRepository
	commentRepo domain.CommentRepository
	userRepo    domain.UserRepository
	secLogger   *security.SecurityLogger
	now         func() time.Time
}

func NewFeedUsecase(
	tweetRepo domain.TweetRepository,
	commentRepo domain.CommentRepository,
	userRepo domain.UserRepository,
	secLogger *security.SecurityLogger,
) domain.FeedUsecase {
	return &feedUsecase{
		tweetRepo:   tweetRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		secLogger:   secLogger,
		now:         time.Now,
	}
}

func (u *feedUsecase) CreateTweet(ctx context.Context, actor domain.Actor, content string) (*domain.TweetView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Tweet content is required")
	}

	now := u.now()
	tweet := &domain.Tweet{Content: content, AuthorID: actor.ID, CreatedAt: now, UpdatedAt: now}
	if err := u.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, apperror.Internal(err)
	}
	return u.view(ctx, tweet)
}

func (u *feedUsecase) UpdateTweet(ctx context.Context, actor domain.Actor, tweetID, content string) (*domain.TweetView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Tweet content is required")
	}

	tweet, err := u.ownTweet(ctx, actor, tweetID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := u.tweetRepo.UpdateContent(ctx, tweet.ID, content, now); err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	tweet.Content = content
	tweet.UpdatedAt = now
	return u.view(ctx, tweet)
}

// DeleteTweet removes the comments before the tweet so a failed call can be retried.
func (u *feedUsecase) DeleteTweet(ctx context.Context, actor domain.Actor, tweetID string) error {
	tweet, err := u.ownTweet(ctx, actor, tweetID)
	if err != nil {
		return err
	}

	removed, err := u.commentRepo.DeleteByTweet(ctx, tweet.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.tweetRepo.Delete(ctx, tweet.ID); err != nil {
		return repoErr(err, "Tweet not found")
	}

	logger.Log.Debug("tweet deleted", "tweet_id", tweet.ID, "comments_removed", removed)
	return nil
}

func (u *feedUsecase) ownTweet(ctx context.Context, actor domain.Actor, tweetID string) (*domain.Tweet, error) {
	tweet, err := u.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	if err := domain.RequireOwnership(tweet.AuthorID, actor.ID, "tweet"); err != nil {
		return nil, denied(ctx, u.secLogger, actor, "tweet:"+tweetID, err)
	}
	return tweet, nil
}

func (u *feedUsecase) GetAllTweets(ctx context.Context) ([]domain.TweetView, error) {
	tweets, err := u.tweetRepo.Fetch(ctx, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u.views(ctx, tweets)
}

func (u *feedUsecase) GetTweetByID(ctx context.Context, tweetID string) (*domain.TweetView, error) {
	tweet, err := u.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	return u.view(ctx, tweet)
}

func (u *feedUsecase) GetAllTweetsOfUser(ctx context.Context, userID string) ([]domain.TweetView, error) {
	if err := u.userExists(ctx, userID); err != nil {
		return nil, err
	}
	tweets, err := u.tweetRepo.Fetch(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u.views(ctx, tweets)
}

func (u *feedUsecase) LikeTweet(ctx context.Context, actor domain.Actor, tweetID string) (*domain.TweetView, error) {
	return u.addMember(ctx, actor, tweetID, domain.TweetLikes, "You have already liked this tweet")
}

func (u *feedUsecase) UnlikeTweet(ctx context.Context, actor domain.Actor, tweetID string) (*domain.TweetView, error) {
	return u.removeMember(ctx, actor, tweetID, domain.TweetLikes, "You have not liked this tweet")
}

func (u *feedUsecase) ShareTweet(ctx context.Context, actor domain.Actor, tweetID string) (*domain.TweetView, error) {
	return u.addMember(ctx, actor, tweetID, domain.TweetShares, "You have already shared this tweet")
}

func (u *feedUsecase) UnshareTweet(ctx context.Context, actor domain.Actor, tweetID string) (*domain.TweetView, error) {
	return u.removeMember(ctx, actor, tweetID, domain.TweetShares, "You have not shared this tweet")
}

func (u *feedUsecase) addMember(ctx context.Context, actor domain.Actor, tweetID string, set domain.TweetSet, conflict string) (*domain.TweetView, error) {
	added, err := u.tweetRepo.AddMember(ctx, tweetID, set, actor.ID)
	if err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	if !added {
		return nil, apperror.Conflict(conflict)
	}
	return u.GetTweetByID(ctx, tweetID)
}

func (u *feedUsecase) removeMember(ctx context.Context, actor domain.Actor, tweetID string, set domain.TweetSet, absent string) (*domain.TweetView, error) {
	removed, err := u.tweetRepo.RemoveMember(ctx, tweetID, set, actor.ID)
	if err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	if !removed {
		return nil, apperror.BadRequest(absent)
	}
	return u.GetTweetByID(ctx, tweetID)
}

func (u *feedUsecase) GetLikesByTweet(ctx context.Context, tweetID string) ([]domain.UserSummary, error) {
	tweet, err := u.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, repoErr(err, "Tweet not found")
	}

	summaries, err := u.userRepo.GetSummaries(ctx, tweet.Likes)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	likers := make([]domain.UserSummary, 0, len(tweet.Likes))
	for _, id := range tweet.Likes {
		if s, ok := summaries[id]; ok {
			likers = append(likers, s)
		}
	}
	return likers, nil
}

func (u *feedUsecase) AddComment(ctx context.Context, actor domain.Actor, tweetID, content string) (*domain.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Comment content is required")
	}
	if _, err := u.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return nil, repoErr(err, "Tweet not found")
	}

	now := u.now()
	comment := &domain.Comment{Content: content, AuthorID: actor.ID, TweetID: tweetID, CreatedAt: now, UpdatedAt: now}
	if err := u.commentRepo.Create(ctx, comment); err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	return u.commentView(ctx, comment)
}

func (u *feedUsecase) UpdateComment(ctx context.Context, actor domain.Actor, commentID, content string) (*domain.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Comment content is required")
	}

	comment, err := u.ownComment(ctx, actor, commentID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	if err := u.commentRepo.UpdateContent(ctx, comment.ID, content, now); err != nil {
		return nil, repoErr(err, "Comment not found")
	}
	comment.Content = content
	comment.UpdatedAt = now
	return u.commentView(ctx, comment)
}

func (u *feedUsecase) DeleteComment(ctx context.Context, actor domain.Actor, commentID string) error {
	comment, err := u.ownComment(ctx, actor, commentID)
	if err != nil {
		return err
	}
	return repoErr(u.commentRepo.Delete(ctx, comment.ID), "Comment not found")
}

func (u *feedUsecase) ownComment(ctx context.Context, actor domain.Actor, commentID string) (*domain.Comment, error) {
	comment, err := u.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, repoErr(err, "Comment not found")
	}
	if err := domain.RequireOwnership(comment.AuthorID, actor.ID, "comment"); err != nil {
		return nil, denied(ctx, u.secLogger, actor, "comment:"+commentID, err)
	}
	return comment, nil
}

func (u *feedUsecase) GetCommentsByTweet(ctx context.Context, tweetID string) ([]domain.CommentView, error) {
	if _, err := u.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return nil, repoErr(err, "Tweet not found")
	}
	comments, err := u.commentRepo.FetchByTweet(ctx, tweetID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors, err := u.userRepo.GetSummaries(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	views := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, domain.CommentView{Comment: c, Author: summaryPtr(authors, c.AuthorID)})
	}
	return views, nil
}

// GetUserActivity derives a user's tweets, likes, shares and comments from the feed store.
func (u *feedUsecase) GetUserActivity(ctx context.Context, userID string) (*domain.FeedActivity, error) {
	if err := u.userExists(ctx, userID); err != nil {
		return nil, err
	}

	activity := &domain.FeedActivity{UserID: userID}
	var err error
	if activity.Tweets, err = u.tweetRepo.ListIDsByAuthor(ctx, userID); err != nil {
		return nil, apperror.Internal(err)
	}
	if activity.Likes, err = u.tweetRepo.ListIDsByMember(ctx, domain.TweetLikes, userID); err != nil {
		return nil, apperror.Internal(err)
	}
	if activity.SharedPosts, err = u.tweetRepo.ListIDsByMember(ctx, domain.TweetShares, userID); err != nil {
		return nil, apperror.Internal(err)
	}
	if activity.Comments, err = u.commentRepo.ListIDsByAuthor(ctx, userID); err != nil {
		return nil, apperror.Internal(err)
	}
	return activity, nil
}

func (u *feedUsecase) userExists(ctx context.Context, userID string) error {
	summaries, err := u.userRepo.GetSummaries(ctx, []string{userID})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return apperror.Internal(err)
	}
	if _, ok := summaries[userID]; !ok {
		return apperror.NotFound("User not found")
	}
	return nil
}

func (u *feedUsecase) view(ctx context.Context, tweet *domain.Tweet) (*domain.TweetView, error) {
	views, err := u.views(ctx, []domain.Tweet{*tweet})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views populates author summaries and comment ids for a page of tweets.
func (u *feedUsecase) views(ctx context.Context, tweets []domain.Tweet) ([]domain.TweetView, error) {
	tweetIDs := make([]string, 0, len(tweets))
	authorIDs := make([]string, 0, len(tweets))
	for _, t := range tweets {
		tweetIDs = append(tweetIDs, t.ID)
		authorIDs = append(authorIDs, t.AuthorID)
	}

	authors, err := u.userRepo.GetSummaries(ctx, authorIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	comments, err := u.commentRepo.ListIDsByTweets(ctx, tweetIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	views := make([]domain.TweetView, 0, len(tweets))
	for _, t := range tweets {
		ids := comments[t.ID]
		if ids == nil {
			ids = []string{}
		}
		views = append(views, domain.TweetView{Tweet: t, Author: summaryPtr(authors, t.AuthorID), Comments: ids})
	}
	return views, nil
}

func (u *feedUsecase) commentView(ctx context.Context, comment *domain.Comment) (*domain.CommentView, error) {
	authors, err := u.userRepo.GetSummaries(ctx, []string{comment.AuthorID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.CommentView{Comment: *comment, Author: summaryPtr(authors, comment.AuthorID)}, nil
}

func summaryPtr(summaries map[string]domain.UserSummary, id string) *domain.UserSummary {
	if s, ok := summaries[id]; ok {
		return &s
	}
	return nil
}

package mongostore

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TweetCollection   = "tweets"
	CommentCollection = "comments"
)

type tweetDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Author    string             `bson:"author"`
	Likes     []string           `bson:"likes"`
	SharedBy  []string           `bson:"sharedBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *tweetDocument) toDomain() domain.Tweet {
	likes, shared := d.Likes, d.SharedBy
	if likes == nil {
		likes = []string{}
	}
	if shared == nil {
		shared = []string{}
	}
	return domain.Tweet{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		AuthorID:  d.Author,
		Likes:     likes,
		SharedBy:  shared,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type tweetRepo struct {
	coll *mongo.Collection
}

func NewTweetRepository(coll *mongo.Collection) domain.TweetRepository {
	return &tweetRepo{coll: coll}
}

// objectID parses a hex id. Malformed ids cannot match any document.
func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return id, nil
}

func (r *tweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	doc := tweetDocument{
		ID:        primitive.NewObjectID(),
		Content:   tweet.Content,
		Author:    tweet.AuthorID,
		Likes:     []string{},
		SharedBy:  []string{},
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*tweet = doc.toDomain()
	return nil
}

func (r *tweetRepo) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc tweetDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	tweet := doc.toDomain()
	return &tweet, nil
}

func (r *tweetRepo) Fetch(ctx context.Context, authorID string) ([]domain.Tweet, error) {
	filter := bson.M{}
	if authorID != "" {
		filter["author"] = authorID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tweets := []domain.Tweet{}
	for cursor.Next(ctx) {
		var doc tweetDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		tweets = append(tweets, doc.toDomain())
	}
	return tweets, cursor.Err()
}

func (r *tweetRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"content": content, "updatedAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tweetRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddMember adds userID only when it is absent, so concurrent calls for the
// same user cannot both report success.
func (r *tweetRepo) AddMember(ctx context.Context, id string, set domain.TweetSet, userID string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	field := string(set)
	filter := bson.M{"_id": oid, field: bson.M{"$ne": userID}}
	update := bson.M{"$addToSet": bson.M{field: userID}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}
	return false, r.ensureExists(ctx, oid)
}

func (r *tweetRepo) RemoveMember(ctx context.Context, id string, set domain.TweetSet, userID string) (bool, error) {
	oid, err := objectID(id)
	if err != nil {
		return false, err
	}
	field := string(set)
	filter := bson.M{"_id": oid, field: userID}
	update := bson.M{"$pull": bson.M{field: userID}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}
	return false, r.ensureExists(ctx, oid)
}

func (r *tweetRepo) ensureExists(ctx context.Context, oid primitive.ObjectID) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tweetRepo) ListIDsByMember(ctx context.Context, set domain.TweetSet, userID string) ([]string, error) {
	return listIDs(ctx, r.coll, bson.M{string(set): userID})
}

func (r *tweetRepo) ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	return listIDs(ctx, r.coll, bson.M{"author": authorID})
}

func listIDs(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID.Hex())
	}
	return ids, cursor.Err()
}

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

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	Author    string             `bson:"author"`
	Tweet     primitive.ObjectID `bson:"tweet"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *commentDocument) toDomain() domain.Comment {
	return domain.Comment{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		AuthorID:  d.Author,
		TweetID:   d.Tweet.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type commentRepo struct {
	coll *mongo.Collection
}

func NewCommentRepository(coll *mongo.Collection) domain.CommentRepository {
	return &commentRepo{coll: coll}
}

func (r *commentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	tweetID, err := objectID(comment.TweetID)
	if err != nil {
		return err
	}
	doc := commentDocument{
		ID:        primitive.NewObjectID(),
		Content:   comment.Content,
		Author:    comment.AuthorID,
		Tweet:     tweetID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	*comment = doc.toDomain()
	return nil
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	comment := doc.toDomain()
	return &comment, nil
}

func (r *commentRepo) UpdateContent(ctx context.Context, id, content string, at time.Time) error {
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

func (r *commentRepo) Delete(ctx context.Context, id string) error {
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

func (r *commentRepo) FetchByTweet(ctx context.Context, tweetID string) ([]domain.Comment, error) {
	oid, err := objectID(tweetID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"tweet": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []domain.Comment{}
	for cursor.Next(ctx) {
		var doc commentDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		comments = append(comments, doc.toDomain())
	}
	return comments, cursor.Err()
}

func (r *commentRepo) DeleteByTweet(ctx context.Context, tweetID string) (int64, error) {
	oid, err := objectID(tweetID)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"tweet": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListIDsByTweets groups comment ids by tweet id. Every requested tweet gets an entry.
func (r *commentRepo) ListIDsByTweets(ctx context.Context, tweetIDs []string) (map[string][]string, error) {
	grouped := make(map[string][]string, len(tweetIDs))
	oids := make([]primitive.ObjectID, 0, len(tweetIDs))
	for _, id := range tweetIDs {
		grouped[id] = []string{}
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return grouped, nil
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "tweet": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"tweet": bson.M{"$in": oids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Tweet primitive.ObjectID `bson:"tweet"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, err
		}
		key := row.Tweet.Hex()
		grouped[key] = append(grouped[key], row.ID.Hex())
	}
	return grouped, cursor.Err()
}

func (r *commentRepo) ListIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	return listIDs(ctx, r.coll, bson.M{"author": authorID})
}

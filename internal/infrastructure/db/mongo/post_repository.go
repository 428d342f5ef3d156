package mongo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ait/forum/internal/core/domain"
)

const collectionPosts = "posts"

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

// Save upserts the whole post document.
func (r *PostRepository) Save(ctx context.Context, p *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	normalize(&p)
	return &p, nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (r *PostRepository) FindByAuthor(ctx context.Context, author string) iter.Seq2[*domain.Post, error] {
	return r.find(ctx, bson.M{"author": author})
}

// FindByTags matches posts carrying at least one of tags.
func (r *PostRepository) FindByTags(ctx context.Context, tags []string) iter.Seq2[*domain.Post, error] {
	if tags == nil {
		tags = []string{}
	}
	return r.find(ctx, bson.M{"tags": bson.M{"$in": tags}})
}

// FindByCreatedBetween matches from <= date_created < to.
func (r *PostRepository) FindByCreatedBetween(ctx context.Context, from, to time.Time) iter.Seq2[*domain.Post, error] {
	return r.find(ctx, bson.M{"date_created": bson.M{"$gte": from.UTC(), "$lt": to.UTC()}})
}

// find runs the query each time the sequence is ranged over. Iteration stops
// after the first error.
func (r *PostRepository) find(ctx context.Context, filter bson.M) iter.Seq2[*domain.Post, error] {
	return func(yield func(*domain.Post, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "date_created", Value: 1}, {Key: "_id", Value: 1}})
		cur, err := r.col.Find(ctx, filter, opts)
		if err != nil {
			yield(nil, fmt.Errorf("find posts: %w", err))
			return
		}
		defer cur.Close(context.WithoutCancel(ctx))

		for cur.Next(ctx) {
			var p domain.Post
			if err := cur.Decode(&p); err != nil {
				yield(nil, fmt.Errorf("decode post: %w", err))
				return
			}
			normalize(&p)
			if !yield(&p, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate posts: %w", err))
		}
	}
}

// EnsureIndexes creates the indexes backing the post finders.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "date_created", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// normalize turns absent arrays into empty ones so responses never carry null.
func normalize(p *domain.Post) {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Comments == nil {
		p.Comments = []domain.Comment{}
	}
	p.DateCreated = p.DateCreated.UTC()
	for i := range p.Comments {
		p.Comments[i].DateCreated = p.Comments[i].DateCreated.UTC()
	}
}

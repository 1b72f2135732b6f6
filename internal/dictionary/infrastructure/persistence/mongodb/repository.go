package mongodb

import (
	"context"
	"errors"
	"regexp"

	"github.com/wyfcoding/khamyang/internal/dictionary/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// 排序使用 strength 2 的 collation，大小写不敏感
func listOptions(sortBy string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: sortBy, Value: 1}}).
		SetCollation(&options.Collation{Locale: "en", Strength: 2})
}

func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// Word Repository
type wordRepository struct{ col *mongo.Collection }

func NewWordRepository(db *mongo.Database) domain.WordRepository {
	return &wordRepository{col: db.Collection("words")}
}

func (r *wordRepository) Save(ctx context.Context, word *domain.Word) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": word.ID},
		word,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *wordRepository) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	var w domain.Word
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, search, sortBy string) ([]*domain.Word, error) {
	filter := bson.M{}
	if search != "" {
		re := searchRegex(search)
		filter = bson.M{"$or": bson.A{
			bson.M{"tai_khamyang": re},
			bson.M{"english": re},
			bson.M{"assamese": re},
		}}
	}

	cursor, err := r.col.Find(ctx, filter, listOptions(sortBy))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var words []*domain.Word
	if err := cursor.All(ctx, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (r *wordRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Song Repository
type songRepository struct{ col *mongo.Collection }

func NewSongRepository(db *mongo.Database) domain.SongRepository {
	return &songRepository{col: db.Collection("songs")}
}

func (r *songRepository) Save(ctx context.Context, song *domain.Song) error {
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": song.ID},
		song,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *songRepository) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	var s domain.Song
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *songRepository) List(ctx context.Context, search, sortBy string) ([]*domain.Song, error) {
	filter := bson.M{}
	if search != "" {
		re := searchRegex(search)
		filter = bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}}
	}

	cursor, err := r.col.Find(ctx, filter, listOptions(sortBy))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var songs []*domain.Song
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

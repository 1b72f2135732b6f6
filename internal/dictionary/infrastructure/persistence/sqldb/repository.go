package sqldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/khamyang/internal/dictionary/domain"
	"gorm.io/gorm"
)

// Word Repository
type wordRepository struct{ db *gorm.DB }

func NewWordRepository(db *gorm.DB) domain.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Save(ctx context.Context, word *domain.Word) error {
	return r.db.WithContext(ctx).Save(word).Error
}

func (r *wordRepository) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	var w domain.Word
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) List(ctx context.Context, search, sortBy string) ([]*domain.Word, error) {
	query := r.db.WithContext(ctx).Model(&domain.Word{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"lower(tai_khamyang) LIKE lower(?) OR lower(english) LIKE lower(?) OR lower(assamese) LIKE lower(?)",
			pattern, pattern, pattern,
		)
	}

	// sortBy 已由领域层白名单归一化，可安全拼入 ORDER BY
	var words []*domain.Word
	if err := query.Order(fmt.Sprintf("lower(%s) ASC", sortBy)).Find(&words).Error; err != nil {
		return nil, err
	}
	return words, nil
}

func (r *wordRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Word{}).Error
}

// Song Repository
type songRepository struct{ db *gorm.DB }

func NewSongRepository(db *gorm.DB) domain.SongRepository {
	return &songRepository{db: db}
}

func (r *songRepository) Save(ctx context.Context, song *domain.Song) error {
	return r.db.WithContext(ctx).Save(song).Error
}

func (r *songRepository) GetByID(ctx context.Context, id string) (*domain.Song, error) {
	var s domain.Song
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *songRepository) List(ctx context.Context, search, sortBy string) ([]*domain.Song, error) {
	query := r.db.WithContext(ctx).Model(&domain.Song{})

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"lower(title) LIKE lower(?) OR lower(description) LIKE lower(?)",
			pattern, pattern,
		)
	}

	var songs []*domain.Song
	if err := query.Order(fmt.Sprintf("lower(%s) ASC", sortBy)).Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *songRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Song{}).Error
}

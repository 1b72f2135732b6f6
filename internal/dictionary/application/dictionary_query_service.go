package application

import (
	"context"

	"github.com/wyfcoding/khamyang/internal/dictionary/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
)

// DictionaryQueryService 词典查询服务，读操作对所有访问者开放。
type DictionaryQueryService struct {
	words domain.WordRepository
	songs domain.SongRepository
}

// NewDictionaryQueryService 创建词典查询服务实例
func NewDictionaryQueryService(words domain.WordRepository, songs domain.SongRepository) *DictionaryQueryService {
	return &DictionaryQueryService{words: words, songs: songs}
}

// ListWords 按搜索词和排序字段列出词条。
// search 为空时返回全部；sortBy 不合法时退回默认排序。
func (s *DictionaryQueryService) ListWords(ctx context.Context, search, sortBy string) ([]*domain.Word, error) {
	words, err := s.words.List(ctx, search, domain.WordSortField(sortBy))
	if err != nil {
		return nil, errs.Store(err)
	}
	if words == nil {
		words = []*domain.Word{}
	}
	return words, nil
}

// ListSongs 按搜索词和排序字段列出歌曲
func (s *DictionaryQueryService) ListSongs(ctx context.Context, search, sortBy string) ([]*domain.Song, error) {
	songs, err := s.songs.List(ctx, search, domain.SongSortField(sortBy))
	if err != nil {
		return nil, errs.Store(err)
	}
	if songs == nil {
		songs = []*domain.Song{}
	}
	return songs, nil
}

// GetWord 按 ID 获取词条
func (s *DictionaryQueryService) GetWord(ctx context.Context, id string) (*domain.Word, error) {
	word, err := s.words.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Store(err)
	}
	if word == nil {
		return nil, errs.NotFound("Word not found")
	}
	return word, nil
}

// GetSong 按 ID 获取歌曲
func (s *DictionaryQueryService) GetSong(ctx context.Context, id string) (*domain.Song, error) {
	song, err := s.songs.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Store(err)
	}
	if song == nil {
		return nil, errs.NotFound("Song not found")
	}
	return song, nil
}

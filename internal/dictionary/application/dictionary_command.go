package application

import (
	"context"
	"time"

	authdomain "github.com/wyfcoding/khamyang/internal/auth/domain"
	"github.com/wyfcoding/khamyang/internal/dictionary/domain"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/metrics"
	"github.com/wyfcoding/khamyang/pkg/mq"
)

// SaveWordCommand 词条创建/更新命令。AudioPath 为空表示本次未上传音频。
type SaveWordCommand struct {
	TaiKhamyang string
	English     string
	Assamese    string
	AudioPath   string
}

// SaveSongCommand 歌曲创建/更新命令
type SaveSongCommand struct {
	Title       string
	Description string
	FilePath    string
}

// DictionaryCommandService 词典命令服务，所有写操作仅限管理员。
type DictionaryCommandService struct {
	words     domain.WordRepository
	songs     domain.SongRepository
	publisher mq.Publisher
	metrics   *metrics.Metrics
}

// NewDictionaryCommandService 创建词典命令服务实例
func NewDictionaryCommandService(
	words domain.WordRepository,
	songs domain.SongRepository,
	publisher mq.Publisher,
	m *metrics.Metrics,
) *DictionaryCommandService {
	return &DictionaryCommandService{
		words:     words,
		songs:     songs,
		publisher: publisher,
		metrics:   m,
	}
}

// AddWord 创建词条，三个语言字段均为必填
func (s *DictionaryCommandService) AddWord(ctx context.Context, auth authdomain.AuthContext, cmd SaveWordCommand) (*domain.Word, error) {
	if !auth.IsAdmin {
		return nil, errs.Unauthorized("Unauthorized")
	}
	if cmd.TaiKhamyang == "" || cmd.English == "" || cmd.Assamese == "" {
		return nil, errs.Validation("Missing required fields")
	}

	word := domain.NewWord(cmd.TaiKhamyang, cmd.English, cmd.Assamese, cmd.AudioPath)
	if err := s.words.Save(ctx, word); err != nil {
		return nil, errs.Store(err)
	}

	s.publishWord(ctx, domain.EventWordCreated, word)
	if s.metrics != nil {
		s.metrics.WordsTotal.Inc()
	}
	return word, nil
}

// UpdateWord 更新词条；未上传新音频时保留原有音频
func (s *DictionaryCommandService) UpdateWord(ctx context.Context, auth authdomain.AuthContext, id string, cmd SaveWordCommand) (*domain.Word, error) {
	if !auth.IsAdmin {
		return nil, errs.Unauthorized("Unauthorized")
	}
	if cmd.TaiKhamyang == "" || cmd.English == "" || cmd.Assamese == "" {
		return nil, errs.Validation("Missing required fields")
	}

	word, err := s.words.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Store(err)
	}
	if word == nil {
		return nil, errs.NotFound("Word not found")
	}

	word.TaiKhamyang = cmd.TaiKhamyang
	word.English = cmd.English
	word.Assamese = cmd.Assamese
	if cmd.AudioPath != "" {
		word.AudioPath = cmd.AudioPath
	}

	if err := s.words.Save(ctx, word); err != nil {
		return nil, errs.Store(err)
	}

	s.publishWord(ctx, domain.EventWordUpdated, word)
	return word, nil
}

// DeleteWord 删除词条；ID 不存在视为成功
func (s *DictionaryCommandService) DeleteWord(ctx context.Context, auth authdomain.AuthContext, id string) error {
	if !auth.IsAdmin {
		return errs.Unauthorized("Unauthorized")
	}
	if err := s.words.Delete(ctx, id); err != nil {
		return errs.Store(err)
	}
	if s.publisher != nil {
		event := domain.WordEvent{WordID: id, Timestamp: time.Now()}
		_ = s.publisher.Publish(ctx, domain.EventWordDeleted, id, event)
	}
	return nil
}

// AddSong 创建歌曲，标题必填
func (s *DictionaryCommandService) AddSong(ctx context.Context, auth authdomain.AuthContext, cmd SaveSongCommand) (*domain.Song, error) {
	if !auth.IsAdmin {
		return nil, errs.Unauthorized("Unauthorized")
	}
	if cmd.Title == "" {
		return nil, errs.Validation("Title is required")
	}

	song := domain.NewSong(cmd.Title, cmd.Description, cmd.FilePath)
	if err := s.songs.Save(ctx, song); err != nil {
		return nil, errs.Store(err)
	}

	s.publishSong(ctx, domain.EventSongCreated, song)
	if s.metrics != nil {
		s.metrics.SongsTotal.Inc()
	}
	return song, nil
}

// UpdateSong 更新歌曲；未上传新音频时保留原有文件
func (s *DictionaryCommandService) UpdateSong(ctx context.Context, auth authdomain.AuthContext, id string, cmd SaveSongCommand) (*domain.Song, error) {
	if !auth.IsAdmin {
		return nil, errs.Unauthorized("Unauthorized")
	}
	if cmd.Title == "" {
		return nil, errs.Validation("Title is required")
	}

	song, err := s.songs.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Store(err)
	}
	if song == nil {
		return nil, errs.NotFound("Song not found")
	}

	song.Title = cmd.Title
	song.Description = cmd.Description
	if cmd.FilePath != "" {
		song.FilePath = cmd.FilePath
	}

	if err := s.songs.Save(ctx, song); err != nil {
		return nil, errs.Store(err)
	}

	s.publishSong(ctx, domain.EventSongUpdated, song)
	return song, nil
}

// DeleteSong 删除歌曲；ID 不存在视为成功
func (s *DictionaryCommandService) DeleteSong(ctx context.Context, auth authdomain.AuthContext, id string) error {
	if !auth.IsAdmin {
		return errs.Unauthorized("Unauthorized")
	}
	if err := s.songs.Delete(ctx, id); err != nil {
		return errs.Store(err)
	}
	if s.publisher != nil {
		event := domain.SongEvent{SongID: id, Timestamp: time.Now()}
		_ = s.publisher.Publish(ctx, domain.EventSongDeleted, id, event)
	}
	return nil
}

func (s *DictionaryCommandService) publishWord(ctx context.Context, eventType string, word *domain.Word) {
	if s.publisher == nil {
		return
	}
	event := domain.WordEvent{
		WordID:      word.ID,
		TaiKhamyang: word.TaiKhamyang,
		English:     word.English,
		Timestamp:   time.Now(),
	}
	_ = s.publisher.Publish(ctx, eventType, word.ID, event)
}

func (s *DictionaryCommandService) publishSong(ctx context.Context, eventType string, song *domain.Song) {
	if s.publisher == nil {
		return
	}
	event := domain.SongEvent{
		SongID:    song.ID,
		Title:     song.Title,
		Timestamp: time.Now(),
	}
	_ = s.publisher.Publish(ctx, eventType, song.ID, event)
}

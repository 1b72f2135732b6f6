package domain

import "time"

// 词典领域事件类型
const (
	EventWordCreated = "word.created"
	EventWordUpdated = "word.updated"
	EventWordDeleted = "word.deleted"
	EventSongCreated = "song.created"
	EventSongUpdated = "song.updated"
	EventSongDeleted = "song.deleted"
)

// WordEvent 词条变更事件
type WordEvent struct {
	WordID      string    `json:"word_id"`
	TaiKhamyang string    `json:"tai_khamyang"`
	English     string    `json:"english"`
	Timestamp   time.Time `json:"timestamp"`
}

// SongEvent 歌曲变更事件
type SongEvent struct {
	SongID    string    `json:"song_id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

package domain

import "github.com/google/uuid"

// Song 歌曲条目，音频文件可选。
type Song struct {
	ID          string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	Title       string `gorm:"type:varchar(255);not null;index" bson:"title" json:"title"`
	Description string `gorm:"type:text" bson:"description" json:"description"`
	FilePath    string `gorm:"type:varchar(255)" bson:"file_path,omitempty" json:"file_path,omitempty"`
}

func (Song) TableName() string {
	return "songs"
}

// NewSong 创建歌曲
func NewSong(title, description, filePath string) *Song {
	return &Song{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		FilePath:    filePath,
	}
}

// SongSortField 歌曲排序字段白名单，默认 title。
func SongSortField(sortBy string) string {
	switch sortBy {
	case "title", "description":
		return sortBy
	default:
		return "title"
	}
}

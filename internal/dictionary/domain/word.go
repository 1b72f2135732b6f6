package domain

import "github.com/google/uuid"

// Word 三语词条：傣语（Tai Khamyang）、英语、阿萨姆语，可附带发音音频。
type Word struct {
	ID          string `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"id"`
	TaiKhamyang string `gorm:"type:varchar(255);not null;index" bson:"tai_khamyang" json:"tai_khamyang"`
	English     string `gorm:"type:varchar(255);not null;index" bson:"english" json:"english"`
	Assamese    string `gorm:"type:varchar(255);not null;index" bson:"assamese" json:"assamese"`
	AudioPath   string `gorm:"type:varchar(255)" bson:"audio_path,omitempty" json:"audio_path,omitempty"`
}

func (Word) TableName() string {
	return "words"
}

// NewWord 创建词条
func NewWord(taiKhamyang, english, assamese, audioPath string) *Word {
	return &Word{
		ID:          uuid.NewString(),
		TaiKhamyang: taiKhamyang,
		English:     english,
		Assamese:    assamese,
		AudioPath:   audioPath,
	}
}

// WordSortField 将客户端提供的排序字段归一化到允许的列，
// 不在白名单内时退回默认的 tai_khamyang。
func WordSortField(sortBy string) string {
	switch sortBy {
	case "tai_khamyang", "english", "assamese":
		return sortBy
	default:
		return "tai_khamyang"
	}
}

package domain

import "context"

// WordRepository 词条仓储接口。
// GetByID 未命中时返回 (nil, nil)；Delete 对不存在的 ID 视为成功。
type WordRepository interface {
	Save(ctx context.Context, word *Word) error
	GetByID(ctx context.Context, id string) (*Word, error)
	// List 返回全部词条，search 为大小写不敏感的子串过滤（三个语言字段任一命中），
	// sortBy 必须是 WordSortField 归一化后的列名。
	List(ctx context.Context, search, sortBy string) ([]*Word, error)
	Delete(ctx context.Context, id string) error
}

// SongRepository 歌曲仓储接口，约定同 WordRepository。
type SongRepository interface {
	Save(ctx context.Context, song *Song) error
	GetByID(ctx context.Context, id string) (*Song, error)
	List(ctx context.Context, search, sortBy string) ([]*Song, error)
	Delete(ctx context.Context, id string) error
}

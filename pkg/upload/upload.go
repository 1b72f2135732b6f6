// Package upload 提供音频文件的本地存储：固定目录 + 清洗后的文件名，库中仅记录文件名引用
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Store 音频文件存储
type Store struct {
	dir     string
	maxSize int64
}

// New 创建文件存储，目录不存在时自动创建
func New(dir string, maxSizeMB int) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{
		dir:     dir,
		maxSize: int64(maxSizeMB) << 20,
	}, nil
}

// Dir 返回存储目录
func (s *Store) Dir() string { return s.dir }

// Save 将内容写入存储目录，返回清洗后的文件名引用
func (s *Store) Save(filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("invalid filename: %q", filename)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	var src io.Reader = r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize)
	}
	if _, err := io.Copy(f, src); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return name, nil
}

// Remove 删除一个已存储的文件，文件不存在不算错误
func (s *Store) Remove(filename string) error {
	name := SanitizeFilename(filename)
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SanitizeFilename 清洗文件名：去除路径成分与不安全字符，防止目录穿越
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

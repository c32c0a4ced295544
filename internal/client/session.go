package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/user/learnhub/internal/model"
)

// Session 登录会话
type Session struct {
	Token string          `toml:"token"`
	User  *model.Identity `toml:"user,omitempty"`
}

// Authenticated 是否持有令牌
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Clear 丢弃令牌与用户信息
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Token = ""
	s.User = nil
}

// Save 写入会话文件（仅当前用户可读写）
func (s *Session) Save(path string) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("编码会话失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("创建会话目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("写入会话文件失败: %w", err)
	}
	return nil
}

// LoadSession 读取会话文件，文件不存在时返回空会话
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取会话文件失败: %w", err)
	}

	var s Session
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("解析会话文件 %s 失败: %w", path, err)
	}
	return &s, nil
}

// RemoveSession 删除会话文件
func RemoveSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("删除会话文件失败: %w", err)
	}
	return nil
}

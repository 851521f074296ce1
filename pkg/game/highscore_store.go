package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HighScoreStore 最高分存储
//
// 启动时读取一次，每局结束时写入一次。
type HighScoreStore interface {
	Load() (int, error)
	// Save 只有当 score 高于已保存的值时才写入
	Save(score int) error
}

// MemoryHighScoreStore 只在当前进程内保存最高分（默认）
type MemoryHighScoreStore struct {
	best int
}

// NewMemoryHighScoreStore 创建内存存储
func NewMemoryHighScoreStore() *MemoryHighScoreStore {
	return &MemoryHighScoreStore{}
}

// Load 实现 HighScoreStore
func (s *MemoryHighScoreStore) Load() (int, error) {
	return s.best, nil
}

// Save 实现 HighScoreStore
func (s *MemoryHighScoreStore) Save(score int) error {
	if score > s.best {
		s.best = score
	}
	return nil
}

// highScoreRecord 持久化格式
type highScoreRecord struct {
	Best int `yaml:"best"`
}

// 存储路径常量
const (
	highScoreObject   = "highscore"
	highScoreProperty = "best"
)

// GdataHighScoreStore 使用 gdata 跨会话保存最高分
// 仅当宿主在配置中开启 persistHighScore 时使用
type GdataHighScoreStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级为不持久化）
}

// NewGdataHighScoreStore 创建 gdata 存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
func NewGdataHighScoreStore(gdataManager *gdata.Manager) *GdataHighScoreStore {
	return &GdataHighScoreStore{gdataManager: gdataManager}
}

// OpenGdataHighScoreStore 打开应用的 gdata 存储目录
func OpenGdataHighScoreStore(appName string) (*GdataHighScoreStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata for %s: %w", appName, err)
	}
	return NewGdataHighScoreStore(m), nil
}

// Load 实现 HighScoreStore
// 尚无记录时返回 0
func (s *GdataHighScoreStore) Load() (int, error) {
	if s.gdataManager == nil {
		return 0, nil
	}
	if !s.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		return 0, nil
	}

	data, err := s.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		return 0, fmt.Errorf("failed to load high score: %w", err)
	}

	var rec highScoreRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("failed to unmarshal high score: %w", err)
	}
	return rec.Best, nil
}

// Save 实现 HighScoreStore（读-改-写）
func (s *GdataHighScoreStore) Save(score int) error {
	if s.gdataManager == nil {
		return nil
	}

	best, err := s.Load()
	if err != nil {
		log.Printf("[HighScoreStore] Warning: %v (overwriting)", err)
		best = 0
	}
	if score <= best {
		return nil
	}

	data, err := yaml.Marshal(highScoreRecord{Best: score})
	if err != nil {
		return fmt.Errorf("failed to marshal high score: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}

	log.Printf("[HighScoreStore] New high score saved: %d", score)
	return nil
}

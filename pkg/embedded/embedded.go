// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的资源。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNotInitialized 调用 Init 之前访问资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置资源文件系统
// 必须在 main() 开始时、任何资源加载之前调用
//
// 参数:
//   - data: 根目录下包含 data/ 的文件系统（embed.FS 或测试用的 fstest.MapFS）
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径格式并检查前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", ErrNotInitialized
	}

	// embed.FS 使用正斜杠
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if path != "data" && !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// FS 返回整个资源文件系统，供 config.LoadTemplateLibrary 等按目录加载的函数使用
func FS() (fs.FS, error) {
	if !initialized {
		return nil, ErrNotInitialized
	}
	return dataFS, nil
}

// ReadFile 读取文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// ReadDir 读取目录内容
// 路径必须以 "data/" 开头
func ReadDir(path string) ([]fs.DirEntry, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	path, err := normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(dataFS, path)
	return err == nil
}

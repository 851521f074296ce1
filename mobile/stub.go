//go:build !mobile

// Package mobile 的桌面端占位
//
// 桌面构建不包含 ebitenmobile 入口和嵌入资源，只保留 Dummy，
// 使 go build ./... 在不带 -tags mobile 时也能通过。
package mobile

// Dummy 与 mobile.go 中的同名函数对应
func Dummy() {}

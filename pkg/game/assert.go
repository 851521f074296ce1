//go:build !debug

package game

// Assert 检查内部不变量
// 非 debug 构建下为空操作
func Assert(cond bool, msg string) {}

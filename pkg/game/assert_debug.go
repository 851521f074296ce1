//go:build debug

package game

// Assert 检查内部不变量，失败时 panic
// 使用 -tags debug 构建时启用
func Assert(cond bool, msg string) {
	if !cond {
		panic("invariant violated: " + msg)
	}
}

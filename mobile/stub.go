//go:build !mobile

// 桌面构建下 mobile 包只保留这个文件，
// 使 go build ./... 和 go vet ./... 在不带 -tags mobile 时也能通过。
// 绑定代码见 mobile.go 与 embed.go。
package mobile

// Dummy 桌面构建下的占位导出，gomobile bind 时不会用到
func Dummy() {}

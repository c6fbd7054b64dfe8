//go:build mobile

// embed.go - 移动端数据嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前先执行 cp -r data mobile/
package mobile

import "embed"

//go:embed data/sim.yaml data/assets.yaml data/scene.yaml data/maps
var dataFS embed.FS

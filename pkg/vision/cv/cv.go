// Package cv 提供基于 OpenCV 的模板匹配功能
//
// 匹配算法为灰度归一化互相关 (TM_CCOEFF_NORMED)，
// 可选多尺度候选和 RGB 三通道置信度校验。
//
// 基本用法:
//
//	tmpl, err := cv.LoadTemplate("accept.png", 0.8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tmpl.Close()
//
//	result, err := tmpl.MatchIn(screen)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Found {
//	    fmt.Printf("找到位置: (%d, %d) 置信度=%.2f\n",
//	        result.Result.X, result.Result.Y, result.Confidence)
//	}
package cv

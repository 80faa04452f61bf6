package utils

// 世界坐标 Y 轴向上，屏幕坐标 Y 轴向下，两者只差一次翻转

func ToWorld(x, y, height float64) (float64, float64) {
	return x, height - y
}

func ToScreen(x, y, height float64) (float64, float64) {
	return x, height - y
}

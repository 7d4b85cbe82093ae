package utils

// 找出名字对应的数据。
// 如果names为空则返回所有数据，
// 如果不存在则将失败名字记录到失败列表中。
func Find[K comparable, T any](dataMap map[K]T, data []T, names []K) (okData []T, failedNames []K) {
	if len(names) == 0 {
		return data, nil
	}
	okData = make([]T, 0, len(names))
	failedNames = make([]K, 0, len(names))
	for _, name := range names {
		if d, ok := dataMap[name]; ok {
			okData = append(okData, d)
		} else {
			failedNames = append(failedNames, name)
		}
	}
	return
}

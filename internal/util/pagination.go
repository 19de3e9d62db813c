package util

func CalculateTotalPage(totalItems int64, pageSize uint) int {
	if pageSize == 0 {
		return 0
	}

	totalPage := int(totalItems) / int(pageSize)
	if int(totalItems)%int(pageSize) != 0 {
		totalPage++
	}

	return totalPage
}

package lists

import "cmp"

// Union merges two ascending, duplicate free lists into a new one.
func Union[T cmp.Ordered](a, b []T) []T {

	result := make([]T, 0, len(a)+len(b))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			result = append(result, a[i])
			i++
		case a[i] > b[j]:
			result = append(result, b[j])
			j++
		default:
			result = append(result, a[i])
			i++
			j++
		}
	}

	result = append(result, a[i:]...)
	result = append(result, b[j:]...)

	return result
}

// Insert adds v to an ascending list unless it is already there.
func Insert[T cmp.Ordered](list []T, v T) []T {

	lo, hi := 0, len(list)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if list[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo < len(list) && list[lo] == v {
		return list
	}

	var zero T
	list = append(list, zero)
	copy(list[lo+1:], list[lo:])
	list[lo] = v

	return list
}

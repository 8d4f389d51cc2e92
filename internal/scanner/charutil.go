package scanner

func IsDigit[T byte | rune](b T) bool {
	return b >= '0' && b <= '9'
}

func IsCtrl[T byte | rune](b T) bool {
	return b < 32
}

package install

import (
	"fmt"
	"regexp"
	"strconv"
)

// size: 50G, 512M, 1T
var sizeRegexp = regexp.MustCompile(`^([0-9]+)([MGT])$`)

func IsValidSize(size string) bool {
	return sizeRegexp.MatchString(size)
}

func ToMiB(size string) int {
	multiplier := map[string]int{
		"M": 1,
		"G": 1024,
		"T": 1024 * 1024,
	}
	matches := sizeRegexp.FindStringSubmatch(size)
	if matches == nil {
		return 0
	}
	val, _ := strconv.Atoi(matches[1])
	return val * multiplier[matches[2]]
}

func humanSize(bytes int64) string {
	const unit = 1000
	if bytes < unit {
		return fmt.Sprintf("%dB", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

const transitionLayout = "2006-01-02 15:04:05 MST"

// ParseTransitionDate pulls the timestamp out of an EC2 state transition
// reason like "User initiated (2024-05-01 17:21:48 GMT)".
func ParseTransitionDate(reason string) (time.Time, error) {
	start := strings.IndexByte(reason, '(')
	end := strings.LastIndexByte(reason, ')')
	if start < 0 || end <= start {
		return time.Time{}, fmt.Errorf("no transition date in %q", reason)
	}
	return time.Parse(transitionLayout, reason[start+1:end])
}

package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var durationPattern = regexp.MustCompile(`(?i)(\d+)\s*(hours?|hrs?|minutes?|mins?|seconds?|secs?)`)

var unitSeconds = map[string]int{
	"second": 1, "seconds": 1, "sec": 1, "secs": 1,
	"minute": 60, "minutes": 60, "min": 60, "mins": 60,
	"hour": 3600, "hours": 3600, "hr": 3600, "hrs": 3600,
}

// StepDuration extracts a cook-timer duration from a recipe step string,
// normalizing every time expression to seconds and summing them
// ("1 minute 30 seconds" is 90). A step with no time expression gets no
// timer.
func StepDuration(step string) (seconds int, ok bool) {
	total := 0
	for _, match := range durationPattern.FindAllStringSubmatch(step, -1) {
		amount, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		mult, found := unitSeconds[strings.ToLower(match[2])]
		if !found {
			mult = 60
		}
		total += amount * mult
	}
	return total, total > 0
}

package helpers

import (
	"fmt"
	"github.com/xhit/go-str2duration/v2"
	"strconv"
	"time"
)

// ParseOHLC converts the decimal strings of a kline into floats
func ParseOHLC(open, high, low, close string) ([4]float64, error) {
	var values [4]float64
	for i, s := range []string{open, high, low, close} {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return values, fmt.Errorf("error parsing price %q: %w", s, err)
		}
		values[i] = v
	}
	return values, nil
}

// IntervalToDuration turns an exchange interval such as "1m" or "4h" into a duration
func IntervalToDuration(interval string) (time.Duration, error) {
	return str2duration.ParseDuration(interval)
}

func PctVariation(oldPrice float64, newPrice float64) float64 {
	if oldPrice == 0 {
		return 0
	}
	return (newPrice - oldPrice) * 100 / oldPrice
}

func Max(numbers []float64) float64 {
	max := 0.0
	for i, x := range numbers {
		if i == 0 || x > max {
			max = x
		}
	}
	return max
}

func Min(numbers []float64) float64 {
	min := 0.0
	for i, x := range numbers {
		if i == 0 || x < min {
			min = x
		}
	}
	return min
}

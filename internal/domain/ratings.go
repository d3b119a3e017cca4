package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Breakdown counts reviews per star value. Index i holds the count for
// rating i+1.
type Breakdown [MaxRating]int

// Count returns the tally for a star value, or 0 when the value is out of range.
func (b Breakdown) Count(rating int) int {
	if !ValidRating(rating) {
		return 0
	}
	return b[rating-1]
}

// Total returns the sum of all counters.
func (b Breakdown) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// add increments the counter for rating. It reports false without touching
// the counters when rating is out of range.
func (b *Breakdown) add(rating int) bool {
	if !ValidRating(rating) {
		return false
	}
	b[rating-1]++
	return true
}

// MarshalJSON writes the breakdown as an object keyed "1".."5" in ascending order.
func (b Breakdown) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%d", strconv.Itoa(i+1), n)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts an object keyed by star value. Missing keys count as zero.
func (b *Breakdown) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Breakdown
	for k, n := range raw {
		star, err := strconv.Atoi(k)
		if err != nil || !ValidRating(star) {
			return fmt.Errorf("invalid breakdown key %q", k)
		}
		out[star-1] = n
	}
	*b = out
	return nil
}

// RatingsSummary is the aggregate of all reviews for one product. It is
// derived on every read and never persisted.
type RatingsSummary struct {
	Average   float64   `json:"average"`
	Count     int       `json:"count"`
	Breakdown Breakdown `json:"breakdown"`
}

// Aggregate computes the summary for a set of reviews. Reviews with a rating
// outside 1..5 are left out of count, sum and breakdown alike; ignored
// reports how many were skipped.
func Aggregate(reviews []Review) (summary RatingsSummary, ignored int) {
	sum := 0
	for _, r := range reviews {
		if !summary.Breakdown.add(r.Rating) {
			ignored++
			continue
		}
		sum += r.Rating
		summary.Count++
	}
	if summary.Count > 0 {
		summary.Average = roundTo(float64(sum)/float64(summary.Count), 2)
	}
	return summary, ignored
}

// roundTo rounds v to the given number of decimal places, half away from zero.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

package rules

import "github.com/babmate/backend/internal/domain/model"

// Pair walks a bucket of requests, oldest first, and joins them two at a
// time. The input must already be sorted ascending by RequestedAt; the
// repository query guarantees that. If an odd request remains it is returned
// as leftover, never paired with itself.
func Pair(requests []model.MatchingRequest) (pairs [][2]model.MatchingRequest, leftover *model.MatchingRequest) {
	for len(requests) >= 2 {
		pairs = append(pairs, [2]model.MatchingRequest{requests[0], requests[1]})
		requests = requests[2:]
	}
	if len(requests) == 1 {
		rest := requests[0]
		leftover = &rest
	}
	return pairs, leftover
}

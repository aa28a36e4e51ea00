package service

import (
	"time"
)

// Clock 便于测试时固定当前时间
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func distinctIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// subtractIDs returns the ids of want not present in have, keeping want's order.
func subtractIDs(want, have []uint) []uint {
	found := make(map[uint]struct{}, len(have))
	for _, id := range have {
		found[id] = struct{}{}
	}
	out := []uint{}
	for _, id := range want {
		if _, ok := found[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

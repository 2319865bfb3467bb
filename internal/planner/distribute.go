package planner

// Distribute spreads items over a fixed number of buckets round-robin so that
// every bucket holds at least minPerBucket items.
//
// Empty input yields empty, non-nil buckets: that is the "nothing to
// recommend" signal and is never padded here. A short list is padded by
// cycling through it from the start, so the same item can appear in more
// than one bucket.
func Distribute(items []string, buckets, minPerBucket int) [][]string {
	if buckets <= 0 {
		return [][]string{}
	}
	out := make([][]string, buckets)
	for i := range out {
		out[i] = []string{}
	}
	if len(items) == 0 {
		return out
	}
	if minPerBucket < 0 {
		minPerBucket = 0
	}

	work := make([]string, len(items), max(len(items), buckets*minPerBucket))
	copy(work, items)
	for i := len(work); i < buckets*minPerBucket; i++ {
		work = append(work, items[i%len(items)])
	}

	for i, item := range work {
		out[i%buckets] = append(out[i%buckets], item)
	}

	rebalance(out, items, minPerBucket)
	return out
}

// rebalance tops up any bucket below minPerBucket, first by taking the last
// item of a bucket with a surplus, then by repeating the bucket's own first
// item, and for an empty bucket the first of items.
func rebalance(out [][]string, items []string, minPerBucket int) {
	for i := range out {
		for len(out[i]) < minPerBucket {
			if j := surplusBucket(out, minPerBucket); j >= 0 {
				last := len(out[j]) - 1
				out[i] = append(out[i], out[j][last])
				out[j] = out[j][:last]
				continue
			}
			if len(out[i]) > 0 {
				out[i] = append(out[i], out[i][0])
			} else {
				out[i] = append(out[i], items[0])
			}
		}
	}
}

func surplusBucket(out [][]string, minPerBucket int) int {
	for j := range out {
		if len(out[j]) > minPerBucket {
			return j
		}
	}
	return -1
}

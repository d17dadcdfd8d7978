package model

import "time"

// RateStatus holds the rate-limit headers observed on a forge API response
type RateStatus struct {
	Limit     int
	Remaining int
	Reset     time.Time
	Observed  bool // false when the response carried no rate-limit headers
}

// TreeListing is the full recursive file listing of one branch
type TreeListing struct {
	Paths []string   // Repository-relative paths, unique and sorted
	Rate  RateStatus // Rate status observed on the tree call
}

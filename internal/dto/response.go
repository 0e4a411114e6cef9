package dto

// RecentQuery size of a "most recent" listing
type RecentQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// GetLimit limit with default
func (q *RecentQuery) GetLimit() int {
	if q.Limit <= 0 {
		return 10
	}
	return q.Limit
}

package models

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
		Limit:   limit,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// PageQuery holds offset pagination inputs. Offset pagination is unstable
// under concurrent inserts, which is acceptable here.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize clamps page to >=1 and limit to 1..100, applying the
// endpoint's default when limit is unset.
func (p PageQuery) Normalize(defaultLimit int) PageQuery {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Skip is the offset for the current page.
func (p PageQuery) Skip() int {
	return (p.Page - 1) * p.Limit
}

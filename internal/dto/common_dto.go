package dto

// PageQuery is bound from skip/limit on every list endpoint. Limit has no upper bound.
type PageQuery struct {
	Skip  int `form:"skip,default=0"    validate:"min=0"`
	Limit int `form:"limit,default=100" validate:"min=0"`
}

// DateRangeQuery is bound from GET .../by-date-range. Both dates are inclusive.
type DateRangeQuery struct {
	StartDate string `form:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   validate:"required,datetime=2006-01-02"`
	PageQuery
}

package domain

// SortField selects which coin attribute drives the view ordering.
type SortField string

const (
	SortMarketCap SortField = "market_cap"
	SortPrice     SortField = "current_price"
	SortChange24h SortField = "price_change_percentage_24h"
)

// SortDirection is the view ordering direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ViewCriteria is the user-controlled configuration of the projected view.
// Pure data: changing any field recomputes the view, never triggers a fetch.
type ViewCriteria struct {
	SearchText string
	Bucket     CapBucket
	SortBy     SortField
	Direction  SortDirection
}

// DefaultViewCriteria matches the initial state of the dashboard:
// no search, all caps, market cap high-to-low.
func DefaultViewCriteria() ViewCriteria {
	return ViewCriteria{
		Bucket:    BucketAll,
		SortBy:    SortMarketCap,
		Direction: SortDesc,
	}
}

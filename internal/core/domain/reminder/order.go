package reminder

import "errors"

type OrderBy struct {
	v string
}

var (
	OrderByNotSet    OrderBy = OrderBy{}
	OrderByDueAtAsc  OrderBy = OrderBy{v: "due_at_asc"}
	OrderByDueAtDesc OrderBy = OrderBy{v: "due_at_desc"}
)

var ErrParseOrderBy = errors.New("invalid order")

func ParseOrderBy(value string) (OrderBy, error) {
	switch value {
	case "due_at_asc":
		return OrderByDueAtAsc, nil
	case "due_at_desc":
		return OrderByDueAtDesc, nil
	default:
		return OrderByNotSet, ErrParseOrderBy
	}
}

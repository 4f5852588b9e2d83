package repository

// Filter is a SQL predicate fragment with its positional arguments,
// numbered from $1. The zero Filter matches everything.
type Filter struct {
	Where string
	Args  []any
}

// Where builds a filter from a predicate expression and its arguments:
//
//	repository.Where("username = $1", name)
func Where(expr string, args ...any) Filter {
	return Filter{Where: expr, Args: args}
}

func (f Filter) clause() string {
	if f.Where == "" {
		return ""
	}
	return " WHERE " + f.Where
}

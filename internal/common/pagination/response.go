package pagination

// Response is the envelope of list endpoints.
//
//	{"success":true,"count":10,"pagination":{...},"data":[...]}
type Response[T any] struct {
	Success    bool     `json:"success"`
	Count      int      `json:"count"`
	Pagination Metadata `json:"pagination"`
	Data       []T      `json:"data"`
}

// NewResponse wraps one page of items.
func NewResponse[T any](data []T, metadata Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{
		Success:    true,
		Count:      len(data),
		Pagination: metadata,
		Data:       data,
	}
}

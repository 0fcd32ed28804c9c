package entity

// Categories is the closed set of article categories.
// The HTTP layer, both persistence adapters and the admin client all read this list.
var Categories = []string{
	"Politics",
	"Business",
	"Technology",
	"Health",
	"Entertainment",
	"Sports",
	"Science",
	"World",
	"Environment",
	"Other",
}

// CategoryAll is the pseudo category used by listing clients to mean "no filter".
const CategoryAll = "All"

// IsValidCategory reports whether c is a member of Categories.
// Matching is case-sensitive.
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

package article

import (
	"net/url"
	"regexp"
	"slices"
	"strings"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
	artUC "news-portal/internal/usecase/article"
)

// Query parameters that are not field filters.
var reservedParams = map[string]bool{
	"select":   true,
	"sort":     true,
	"page":     true,
	"limit":    true,
	"category": true,
}

// createdAt[gte]=2024-01-01
var bracketKey = regexp.MustCompile(`^([A-Za-z]+)\[([a-z]+)\]$`)

// listQuery is a parsed GET /api/articles request.
type listQuery struct {
	Input  artUC.ListInput
	Select []string
}

// parseListQuery reads paging, sorting, projection and filters.
//
//	?page=2&limit=5&sort=-createdAt,title&select=title,category
//	&category=Sports&createdAt_gte=2024-01-01&author[in]=Jane,John
//
// category=All means no category filter. Filter fields and operators are
// checked against the repository allow-list by the service.
func parseListQuery(q url.Values, cfg pagination.Config) (listQuery, error) {
	var out listQuery

	page, err := pagination.ParseQuery(q, cfg)
	if err != nil {
		field := "page"
		if strings.HasPrefix(err.Error(), "limit") {
			field = "limit"
		}
		return out, &entity.ValidationError{Field: field, Message: err.Error()}
	}
	out.Input.Page = page

	if c := strings.TrimSpace(q.Get("category")); c != "" && c != entity.CategoryAll {
		out.Input.Filter = append(out.Input.Filter, repository.Condition{
			Field: "category", Op: repository.OpEq, Values: []string{c},
		})
	}

	for _, s := range splitList(q.Get("sort")) {
		desc := strings.HasPrefix(s, "-")
		out.Input.Sort = append(out.Input.Sort, repository.SortField{Field: strings.TrimPrefix(s, "-"), Desc: desc})
	}

	for _, f := range splitList(q.Get("select")) {
		if f == "id" {
			continue
		}
		if _, ok := repository.Fields[f]; !ok {
			return out, &entity.ValidationError{Field: "select", Message: "unknown field " + f}
		}
		out.Select = append(out.Select, f)
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		if !reservedParams[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	for _, key := range keys {
		field, op := splitFilterKey(key)
		for _, v := range q[key] {
			values := []string{v}
			if op == repository.OpIn {
				values = splitList(v)
			}
			out.Input.Filter = append(out.Input.Filter, repository.Condition{Field: field, Op: op, Values: values})
		}
	}
	return out, nil
}

// splitFilterKey accepts "field", "field_op" and "field[op]".
func splitFilterKey(key string) (string, repository.Op) {
	if m := bracketKey.FindStringSubmatch(key); m != nil {
		if op, ok := repository.ParseOp(m[2]); ok {
			return m[1], op
		}
		return key, repository.OpEq
	}
	if i := strings.LastIndexByte(key, '_'); i > 0 {
		if op, ok := repository.ParseOp(key[i+1:]); ok {
			return key[:i], op
		}
	}
	return key, repository.OpEq
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

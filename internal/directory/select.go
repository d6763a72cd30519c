package directory

import (
	"empdir/internal/types"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
)

// Select keeps the employees for which the JMESPath expression evaluates to true.
// The expression sees the record in its wire form, e.g. "contains(email, '@corp.')" or "id > `10`".
// Results that are not booleans count as false. The expression is compiled once; a syntax
// error is returned before any record is evaluated.
func Select(list []types.Employee, expression string) ([]types.Employee, error) {
	q, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	out := make([]types.Employee, 0, len(list))
	for _, e := range list {
		doc, err := wireForm(e)
		if err != nil {
			return nil, err
		}
		v, err := q.Search(doc)
		if err != nil {
			return nil, fmt.Errorf("jmespath: %w", err)
		}
		if matched, ok := v.(bool); ok && matched {
			out = append(out, e)
		}
	}
	return out, nil
}

// wireForm renders e the way the backend sends it, so field names in expressions
// match the JSON keys.
func wireForm(e types.Employee) (map[string]any, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

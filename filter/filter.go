package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/Riprock/aircall-api/aircall"
)

// Filter is a compiled expr filter evaluated client-side against fetched
// records.
type Filter struct {
	program    *vm.Program
	expression string
}

// Compile compiles a filter expression.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	// Define static helper functions that can be used in expressions
	env := map[string]interface{}{
		// Date helpers
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"monthsAgo": func(months int) time.Time {
			return time.Now().AddDate(0, -months, 0)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// Current time
		"now": time.Now,
	}

	// Compile the expression
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program:    program,
		expression: expression,
	}, nil
}

// Expression returns the source expression the filter was compiled from.
func (f *Filter) Expression() string {
	return f.expression
}

// MatchCall evaluates the filter against a call.
func (f *Filter) MatchCall(call aircall.Call) (bool, error) {
	env := map[string]interface{}{
		// Call data
		"Call":     call,
		"Missed":   call.IsMissed(),
		"Inbound":  call.IsInbound(),
		"Duration": call.Duration,
		"Started":  call.StartedTime(),

		// Tag helpers
		"hasTag": func(tag string) bool {
			for _, t := range call.Tags {
				if strings.EqualFold(t.Name, tag) {
					return true
				}
			}
			return false
		},

		// Agent helpers
		"answeredBy": func(name string) bool {
			return call.User != nil && strings.EqualFold(call.User.Name, name)
		},
		"onLine": func(digits string) bool {
			return call.Number != nil && call.Number.Digits == digits
		},
	}

	return f.run(env)
}

// MatchContact evaluates the filter against a contact.
func (f *Filter) MatchContact(contact aircall.Contact) (bool, error) {
	env := map[string]interface{}{
		// Contact data
		"Contact": contact,
		"Name":    contact.FullName(),
		"Company": contact.CompanyName,
		"Shared":  contact.IsShared,

		"hasPhone": func(value string) bool {
			for _, p := range contact.PhoneNumbers {
				if p.Value == value {
					return true
				}
			}
			return false
		},
		"hasEmail": func(value string) bool {
			for _, e := range contact.Emails {
				if strings.EqualFold(e.Value, value) {
					return true
				}
			}
			return false
		},
	}

	return f.run(env)
}

func (f *Filter) run(env map[string]interface{}) (bool, error) {
	addHelpers(env)

	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must evaluate to a boolean, got %T", output)
	}
	return result, nil
}

// addHelpers mirrors the static helpers declared at compile time.
func addHelpers(env map[string]interface{}) {
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	}
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

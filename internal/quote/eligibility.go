package quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avstrong/pricelist/internal/pricing"
	"github.com/diegoholiveira/jsonlogic/v3"
)

var ErrRuleEvaluation = errors.New("eligibility rule evaluation failed")

// Evaluator checks adjustment-rule conditions against a stay by compiling
// them to JsonLogic.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

type facts struct {
	Adults           int `json:"adults"`
	Children         int `json:"children"`
	EligibleChildren int `json:"eligibleChildren"`
	LeadDays         int `json:"leadDays"`
}

// Logic builds the JsonLogic expression for the conditions. minLeadDays is
// set for discounts only. A nil result means the rule is unconditional.
func Logic(c pricing.Conditions, minLeadDays *int) map[string]any {
	var clauses []any

	if c.MinAdults != nil {
		clauses = append(clauses, atLeast("adults", *c.MinAdults))
	}

	if c.MinChildren != nil {
		clauses = append(clauses, atLeast("children", *c.MinChildren))
	}

	if c.HasChildAgeRange() {
		clauses = append(clauses, atLeast("eligibleChildren", 1))
	}

	if minLeadDays != nil {
		clauses = append(clauses, atLeast("leadDays", *minLeadDays))
	}

	if len(clauses) == 0 {
		return nil
	}

	return map[string]any{"and": clauses}
}

func atLeast(name string, n int) map[string]any {
	return map[string]any{">=": []any{map[string]any{"var": name}, n}}
}

func (e *Evaluator) Eligible(c pricing.Conditions, stay pricing.Stay, minLeadDays *int) (bool, error) {
	logic := Logic(c, minLeadDays)
	if logic == nil {
		return true, nil
	}

	ruleJSON, err := json.Marshal(logic)
	if err != nil {
		return false, fmt.Errorf("marshal rule: %w", err)
	}

	dataJSON, err := json.Marshal(facts{
		Adults:           stay.Adults,
		Children:         len(stay.ChildAges),
		EligibleChildren: eligibleChildren(c, stay),
		LeadDays:         stay.LeadDays(),
	})
	if err != nil {
		return false, fmt.Errorf("marshal facts: %w", err)
	}

	var result bytes.Buffer

	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &result); err != nil {
		return false, fmt.Errorf("%w: %v", ErrRuleEvaluation, err)
	}

	var out any
	if err := json.Unmarshal(bytes.TrimSpace(result.Bytes()), &out); err != nil {
		return false, fmt.Errorf("%w: decode result %q: %v", ErrRuleEvaluation, result.String(), err)
	}

	b, ok := out.(bool)

	return ok && b, nil
}

package jsonlogic

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonlogiclib "github.com/diegoholiveira/jsonlogic/v3"
)

// Node is a parsed and validated logic expression, ready for repeated
// evaluation against different fact maps.
type Node struct {
	rule any
	raw  string
}

// Raw returns the expression source text the node was parsed from.
func (n Node) Raw() string {
	return n.raw
}

// Evaluator parses account-authored JsonLogic expressions and applies them to
// fact maps.
type Evaluator interface {
	Parse(raw json.RawMessage) (Node, error)
	Evaluate(node Node, facts map[string]any) (bool, error)
}

func New() Evaluator {
	return jsonLogic{}
}

type jsonLogic struct{}

func (jsonLogic) Parse(raw json.RawMessage) (Node, error) {
	var rule any
	if err := json.Unmarshal(raw, &rule); err != nil {
		return Node{}, fmt.Errorf("unable to parse logic expression: %v", err)
	}

	if !jsonlogiclib.IsValid(bytes.NewReader(raw)) {
		return Node{}, fmt.Errorf("invalid logic expression: %s", string(raw))
	}

	return Node{rule: rule, raw: string(raw)}, nil
}

func (jsonLogic) Evaluate(node Node, facts map[string]any) (bool, error) {
	result, err := jsonlogiclib.ApplyInterface(node.rule, facts)
	if err != nil {
		return false, err
	}

	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("logic expression evaluated to a non-boolean: %v", result)
	}

	return b, nil
}

package tools

import (
	"context"
	"fmt"

	"github.com/petasbytes/nanda-agents/internal/calc"
)

type CalcInput struct {
	Expression string `json:"expression" jsonschema_description:"Arithmetic expression using digits, + - * /, and parentheses."`
}

var CalcInputSchema = GenerateSchema[CalcInput]()

// Calc returns the calculator tool. Evaluation failures come back as
// result text, never as a Go error: the tool boundary absorbs them.
func Calc() Definition {
	return Definition{
		Name:        "calc",
		Description: "Evaluate a restricted arithmetic expression. Digits, + - * /, parentheses and decimal points only; everything else is stripped before evaluation.",
		InputSchema: CalcInputSchema,
		Run: func(_ context.Context, arg string) (string, error) {
			expr := calc.Sanitize(arg)
			val, err := calc.Eval(expr)
			if err != nil {
				return fmt.Sprintf("Calc error: %v", err), nil
			}
			return fmt.Sprintf("%s = %s", expr, calc.Format(val)), nil
		},
	}
}

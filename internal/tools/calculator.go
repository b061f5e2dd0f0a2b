package tools

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/rekabot/rekabot/internal/schema"
)

// reSafeExpr is the character allow-list checked before any evaluation:
// digits, arithmetic operators, parentheses, whitespace, and word characters
// for function names. Anything else (quotes, semicolons, brackets) rejects
// the expression outright.
var reSafeExpr = regexp.MustCompile(`^[0-9+\-*/.()^\s\w]+$`)

// CalculatorTool evaluates arithmetic expressions with a small recursive-
// descent parser. No code is ever passed to an interpreter.
type CalculatorTool struct{}

// NewCalculatorTool creates a CalculatorTool.
func NewCalculatorTool() *CalculatorTool { return &CalculatorTool{} }

func (t *CalculatorTool) Name() string { return string(ToolCalculator) }
func (t *CalculatorTool) Description() string {
	return "Perform mathematical calculations. Supports: +, -, *, /, ^, sqrt, sin, cos, tan, log"
}
func (t *CalculatorTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"expression": {
				Type:        "string",
				Description: `Expression to evaluate, e.g. "2 + 2", "sqrt(16)", "sin(45)"`,
			},
		},
		Required: []string{"expression"},
	}
}

func (t *CalculatorTool) Execute(_ context.Context, args map[string]any) schema.Result {
	expression, _ := args["expression"].(string)

	expr := strings.ToLower(strings.TrimSpace(expression))
	if expr == "" {
		return schema.Errorf("expression is empty").With("expression", expression)
	}
	if !reSafeExpr.MatchString(expr) {
		return schema.Errorf("expression contains disallowed characters").With("expression", expression)
	}

	value, err := evalExpression(expr)
	if err != nil {
		return schema.Errorf("cannot evaluate expression: %v", err).With("expression", expression)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return schema.Errorf("result is not a finite number").With("expression", expression)
	}

	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	return schema.Result{
		"success":    true,
		"expression": expression,
		"result":     value,
		"formatted":  fmt.Sprintf("%s = %s", expression, formatted),
	}
}

// ---------------------------------------------------------------------------
// Expression evaluator
// ---------------------------------------------------------------------------
//
// Grammar (standard precedence, ^ binds tightest and is right-associative):
//
//	expr   = term   { ("+" | "-") term }
//	term   = power  { ("*" | "/") power }
//	power  = unary  [ "^" power ]
//	unary  = "-" unary | primary
//	primary = number | ident "(" expr ")" | "(" expr ")"

// mathFuncs maps the allowed function names to implementations. Trig works
// in degrees; log is base-10.
var mathFuncs = map[string]func(float64) float64{
	"sqrt": math.Sqrt,
	"sin":  func(x float64) float64 { return math.Sin(x * math.Pi / 180) },
	"cos":  func(x float64) float64 { return math.Cos(x * math.Pi / 180) },
	"tan":  func(x float64) float64 { return math.Tan(x * math.Pi / 180) },
	"log":  math.Log10,
}

type exprParser struct {
	input string
	pos   int
}

func evalExpression(input string) (float64, error) {
	p := &exprParser{input: input}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at position %d", p.input[p.pos], p.pos)
	}
	return v, nil
}

func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parsePower() (float64, error) {
	base, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.peek() == '^' {
		p.pos++
		exp, err := p.parsePower() // right-associative
		if err != nil {
			return 0, err
		}
		return math.Pow(base, exp), nil
	}
	return base, nil
}

func (p *exprParser) parseUnary() (float64, error) {
	p.skipSpace()
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (float64, error) {
	p.skipSpace()
	c := p.peek()

	switch {
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(')'); err != nil {
			return 0, err
		}
		return v, nil

	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()

	case unicode.IsLetter(rune(c)) || c == '_':
		return p.parseFunc()
	}

	return 0, fmt.Errorf("unexpected character %q at position %d", c, p.pos)
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", p.input[start:p.pos])
	}
	return v, nil
}

func (p *exprParser) parseFunc() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' {
			p.pos++
			continue
		}
		break
	}
	name := p.input[start:p.pos]
	fn, ok := mathFuncs[name]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", name)
	}
	if err := p.expect('('); err != nil {
		return 0, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if err := p.expect(')'); err != nil {
		return 0, err
	}
	return fn(arg), nil
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return fmt.Errorf("expected %q at position %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

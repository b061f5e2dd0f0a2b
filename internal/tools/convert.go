package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rekabot/rekabot/internal/schema"
)

// ---------------------------------------------------------------------------
// CurrencyTool
// ---------------------------------------------------------------------------

// currencyRates is a fixed-point lookup table: units of each currency per
// one USD. Rates are deliberately static — this tool never consults a live
// feed.
var currencyRates = map[string]float64{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.50,
	"IDR": 15750.0,
	"SGD": 1.34,
	"AUD": 1.52,
	"MYR": 4.47,
}

// CurrencyTool converts an amount between two currencies using the fixed
// rate table.
type CurrencyTool struct{}

// NewCurrencyTool creates a CurrencyTool.
func NewCurrencyTool() *CurrencyTool { return &CurrencyTool{} }

func (t *CurrencyTool) Name() string { return string(ToolCurrency) }
func (t *CurrencyTool) Description() string {
	return "Convert an amount between currencies using a fixed rate table (not live rates)"
}
func (t *CurrencyTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"amount": {Type: "number", Description: "Amount to convert"},
			"from":   {Type: "string", Description: "Source currency code, e.g. USD"},
			"to":     {Type: "string", Description: "Target currency code, e.g. IDR"},
		},
		Required: []string{"amount", "from", "to"},
	}
}

func (t *CurrencyTool) Execute(_ context.Context, args map[string]any) schema.Result {
	amount, _ := args["amount"].(float64)
	from := strings.ToUpper(strings.TrimSpace(stringArg(args, "from")))
	to := strings.ToUpper(strings.TrimSpace(stringArg(args, "to")))

	fromRate, ok := currencyRates[from]
	if !ok {
		return schema.Errorf("unknown currency: %s", from).
			WithSuggestion("Supported: " + strings.Join(currencyCodes(), ", "))
	}
	toRate, ok := currencyRates[to]
	if !ok {
		return schema.Errorf("unknown currency: %s", to).
			WithSuggestion("Supported: " + strings.Join(currencyCodes(), ", "))
	}

	converted := amount / fromRate * toRate
	return schema.Result{
		"success":   true,
		"amount":    amount,
		"from":      from,
		"to":        to,
		"result":    converted,
		"formatted": fmt.Sprintf("%.2f %s = %.2f %s", amount, from, converted, to),
	}
}

func currencyCodes() []string {
	codes := make([]string, 0, len(currencyRates))
	for code := range currencyRates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ---------------------------------------------------------------------------
// UnitTool
// ---------------------------------------------------------------------------

// unitFactors maps linear units to their size in the base unit of their
// family (meter for length, kilogram for weight). Temperature is handled
// separately because its conversions are affine, not linear.
var unitFactors = map[string]struct {
	family string
	factor float64
}{
	"mm": {"length", 0.001},
	"cm": {"length", 0.01},
	"m":  {"length", 1},
	"km": {"length", 1000},
	"in": {"length", 0.0254},
	"ft": {"length", 0.3048},
	"mi": {"length", 1609.344},
	"g":  {"weight", 0.001},
	"kg": {"weight", 1},
	"oz": {"weight", 0.028349523125},
	"lb": {"weight", 0.45359237},
}

// UnitTool converts values between length, weight, and temperature units.
type UnitTool struct{}

// NewUnitTool creates a UnitTool.
func NewUnitTool() *UnitTool { return &UnitTool{} }

func (t *UnitTool) Name() string { return string(ToolUnit) }
func (t *UnitTool) Description() string {
	return "Convert a value between units (length: mm/cm/m/km/in/ft/mi, weight: g/kg/oz/lb, temperature: c/f/k)"
}
func (t *UnitTool) Parameters() schema.ParameterSchema {
	return schema.ParameterSchema{
		Properties: map[string]schema.Property{
			"value": {Type: "number", Description: "Value to convert"},
			"from":  {Type: "string", Description: "Source unit, e.g. km"},
			"to":    {Type: "string", Description: "Target unit, e.g. mi"},
		},
		Required: []string{"value", "from", "to"},
	}
}

func (t *UnitTool) Execute(_ context.Context, args map[string]any) schema.Result {
	value, _ := args["value"].(float64)
	from := strings.ToLower(strings.TrimSpace(stringArg(args, "from")))
	to := strings.ToLower(strings.TrimSpace(stringArg(args, "to")))

	if isTempUnit(from) || isTempUnit(to) {
		return t.convertTemperature(value, from, to)
	}

	fromU, ok := unitFactors[from]
	if !ok {
		return schema.Errorf("unknown unit: %s", from)
	}
	toU, ok := unitFactors[to]
	if !ok {
		return schema.Errorf("unknown unit: %s", to)
	}
	if fromU.family != toU.family {
		return schema.Errorf("cannot convert %s (%s) to %s (%s)", from, fromU.family, to, toU.family)
	}

	converted := value * fromU.factor / toU.factor
	return schema.Result{
		"success":   true,
		"value":     value,
		"from":      from,
		"to":        to,
		"result":    converted,
		"formatted": fmt.Sprintf("%g %s = %g %s", value, from, converted, to),
	}
}

func isTempUnit(u string) bool { return u == "c" || u == "f" || u == "k" }

func (t *UnitTool) convertTemperature(value float64, from, to string) schema.Result {
	if !isTempUnit(from) || !isTempUnit(to) {
		return schema.Errorf("cannot convert %s to %s", from, to)
	}

	// Normalise to Celsius, then to the target.
	var celsius float64
	switch from {
	case "c":
		celsius = value
	case "f":
		celsius = (value - 32) * 5 / 9
	case "k":
		celsius = value - 273.15
	}

	var converted float64
	switch to {
	case "c":
		converted = celsius
	case "f":
		converted = celsius*9/5 + 32
	case "k":
		converted = celsius + 273.15
	}

	return schema.Result{
		"success":   true,
		"value":     value,
		"from":      from,
		"to":        to,
		"result":    converted,
		"formatted": fmt.Sprintf("%g°%s = %g°%s", value, strings.ToUpper(from), converted, strings.ToUpper(to)),
	}
}

// stringArg reads a string argument, tolerating absence.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

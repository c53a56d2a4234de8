package payroll

import "github.com/shopspring/decimal"

// Non-taxable annual income thresholds (PTKP) by declared dependent and
// marital category. Unknown categories fall back to TK/0.
var nonTaxableThresholds = map[string]decimal.Decimal{
	"TK/0": decimal.NewFromInt(54_000_000),
	"K/0":  decimal.NewFromInt(58_500_000),
	"K/1":  decimal.NewFromInt(63_000_000),
	"K/2":  decimal.NewFromInt(67_500_000),
	"K/3":  decimal.NewFromInt(72_000_000),
}

type taxBracket struct {
	upTo decimal.Decimal // zero means no upper bound
	rate decimal.Decimal
}

var taxBrackets = []taxBracket{
	{upTo: decimal.NewFromInt(60_000_000), rate: decimal.NewFromFloat(0.05)},
	{upTo: decimal.NewFromInt(250_000_000), rate: decimal.NewFromFloat(0.15)},
	{upTo: decimal.NewFromInt(500_000_000), rate: decimal.NewFromFloat(0.25)},
	{upTo: decimal.NewFromInt(5_000_000_000), rate: decimal.NewFromFloat(0.30)},
	{upTo: decimal.Zero, rate: decimal.NewFromFloat(0.35)},
}

// monthlyWithholding annualizes the salary, subtracts the non-taxable
// threshold for the category, runs the remainder through the progressive
// brackets and divides back to a whole-currency monthly figure.
func monthlyWithholding(monthlySalary decimal.Decimal, category string) decimal.Decimal {
	threshold, ok := nonTaxableThresholds[category]
	if !ok {
		threshold = nonTaxableThresholds["TK/0"]
	}

	taxable := monthlySalary.Mul(twelve).Sub(threshold)
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	annualTax := decimal.Zero
	lowerBound := decimal.Zero
	for _, bracket := range taxBrackets {
		var slice decimal.Decimal
		if bracket.upTo.IsZero() {
			slice = taxable.Sub(lowerBound)
		} else {
			width := bracket.upTo.Sub(lowerBound)
			slice = decimal.Min(taxable.Sub(lowerBound), width)
		}
		if slice.LessThanOrEqual(decimal.Zero) {
			break
		}
		annualTax = annualTax.Add(slice.Mul(bracket.rate))
		lowerBound = bracket.upTo
	}

	return annualTax.Div(twelve).Round(0)
}

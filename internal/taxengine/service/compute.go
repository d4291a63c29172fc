package service

import (
	"github.com/shopspring/decimal"
	taxenginedomain "github.com/smallbiznis/taxflow/internal/taxengine/domain"
	taxratedomain "github.com/smallbiznis/taxflow/internal/taxrate/domain"
	taxsettingsdomain "github.com/smallbiznis/taxflow/internal/taxsettings/domain"
)

var hundred = decimal.NewFromInt(100)

// accumulator threads the running tax and breakdown through the ordered
// rule evaluation. Compound rules read Tax as part of their base.
type accumulator struct {
	Tax     decimal.Decimal
	Details []taxenginedomain.TaxDetail
}

// Compute applies the given rules to the cart in two ordered passes.
//
// Pass one evaluates non-compound rules in ascending priority; pass two
// evaluates compound rules the same way but adds the tax accumulated so far
// to each base ("tax on tax"). Rules arrive already sorted by priority then
// ID, which keeps the breakdown order stable across runs. A rule whose base
// ends up at or below zero is skipped without emitting a detail entry.
//
// The final total is rounded to 2 decimal places (half up) only when the
// settings ask for it; per-rule amounts are never re-rounded so their sum
// stays consistent with the pre-rounding total.
func Compute(
	items []taxenginedomain.LineItem,
	shippingCost decimal.Decimal,
	couponDiscount decimal.Decimal,
	rules []taxratedomain.TaxRate,
	settings taxsettingsdomain.TaxSettings,
) taxenginedomain.Result {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	taxable := subtotal.Sub(couponDiscount)

	if len(rules) == 0 {
		return taxenginedomain.Result{
			Subtotal:      subtotal,
			TaxableAmount: taxable,
			TaxAmount:     decimal.Zero,
			TaxDetails:    []taxenginedomain.TaxDetail{},
		}
	}

	acc := accumulator{Tax: decimal.Zero, Details: make([]taxenginedomain.TaxDetail, 0, len(rules))}
	acc = applyPass(acc, false, items, shippingCost, couponDiscount, subtotal, rules, settings)
	acc = applyPass(acc, true, items, shippingCost, couponDiscount, subtotal, rules, settings)

	total := acc.Tax
	if settings.RoundTaxAtSubtotal {
		total = total.Round(2)
	}

	return taxenginedomain.Result{
		Subtotal:      subtotal,
		TaxableAmount: taxable,
		TaxAmount:     total,
		TaxDetails:    acc.Details,
	}
}

func applyPass(
	acc accumulator,
	compound bool,
	items []taxenginedomain.LineItem,
	shippingCost decimal.Decimal,
	couponDiscount decimal.Decimal,
	subtotal decimal.Decimal,
	rules []taxratedomain.TaxRate,
	settings taxsettingsdomain.TaxSettings,
) accumulator {
	for i := range rules {
		rule := &rules[i]
		if rule.IsCompound != compound {
			continue
		}

		base := ruleBase(rule, items, shippingCost, couponDiscount, subtotal, settings)
		if compound {
			base = base.Add(acc.Tax)
		}
		if base.Sign() <= 0 {
			continue
		}

		tax := base.Mul(rule.RatePercent).Div(hundred)
		acc.Tax = acc.Tax.Add(tax)
		acc.Details = append(acc.Details, taxenginedomain.TaxDetail{
			RuleID:        rule.ID,
			Name:          rule.Name,
			RatePercent:   rule.RatePercent,
			TaxableAmount: base,
			TaxAmount:     tax,
			IsCompound:    compound,
		})
	}
	return acc
}

// ruleBase sums the lines the rule covers, folds in shipping when the store
// taxes on the shipping address and the rule covers the shipping tax class,
// then allocates the coupon discount proportionally to this rule's share of
// the subtotal. A zero subtotal short-circuits the allocation so the
// division can never blow up.
func ruleBase(
	rule *taxratedomain.TaxRate,
	items []taxenginedomain.LineItem,
	shippingCost decimal.Decimal,
	couponDiscount decimal.Decimal,
	subtotal decimal.Decimal,
	settings taxsettingsdomain.TaxSettings,
) decimal.Decimal {
	base := decimal.Zero
	for _, item := range items {
		if rule.AppliesToCategory(item.Category) {
			base = base.Add(item.Amount())
		}
	}

	if settings.CalculateTaxBasedOn == taxsettingsdomain.BasisShipping &&
		rule.AppliesToCategory(settings.ShippingTaxClass) {
		base = base.Add(shippingCost)
	}

	if couponDiscount.Sign() > 0 && subtotal.Sign() > 0 {
		base = base.Sub(couponDiscount.Mul(base).Div(subtotal))
	}
	return base
}

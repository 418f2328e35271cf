package taxes

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Contable-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Amount calcula el valor del impuesto sobre una base y una cantidad.
//
//	percentage:      base × p/100 (si está incluido en el precio: base × p/(100+p))
//	fixed_amount:    Amount
//	amount_per_unit: Amount × cantidad
//
// El resultado se redondea a 2 decimales y nunca es negativo.
func Amount(tax *entity.Tax, base, quantity decimal.Decimal) decimal.Decimal {
	if tax == nil {
		return decimal.Zero
	}
	var v decimal.Decimal
	switch tax.Kind {
	case entity.TaxKindPercentage:
		if base.LessThanOrEqual(decimal.Zero) || tax.Percentage.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero
		}
		if tax.IncludedInPrice {
			v = base.Mul(tax.Percentage).Div(hundred.Add(tax.Percentage))
		} else {
			v = base.Mul(tax.Percentage).Div(hundred)
		}
	case entity.TaxKindFixedAmount:
		v = tax.Amount
	case entity.TaxKindAmountPerUnit:
		v = tax.Amount.Mul(quantity)
	default:
		return decimal.Zero
	}
	v = v.Round(2)
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// NetBase devuelve la base gravable descontando los impuestos incluidos en el precio.
func NetBase(gross decimal.Decimal, included []decimal.Decimal) decimal.Decimal {
	net := gross
	for _, v := range included {
		net = net.Sub(v)
	}
	return net
}

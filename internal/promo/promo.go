// Package promo computes the storefront's tiered "Buy 2 Get 2" promotion.
// Every group of GroupSize eligible units across the whole cart unlocks
// FreePerGroup free units, and the cheapest units are the ones given away.
package promo

import (
	"sort"

	"github.com/TheWizler/unusualpills-site/internal/cart"
	"github.com/TheWizler/unusualpills-site/internal/money"
)

// Rule describes a buy-K-get-F promotion over groups of eligible units.
type Rule struct {
	GroupSize    int    // units needed to unlock a group (4)
	FreePerGroup int    // free units granted per complete group (2)
	CouponName   string // display name for the materialized coupon
}

// DefaultRule is the production promotion: buy 2 get 2, i.e. every 4 eligible
// units make 2 of them free.
func DefaultRule() Rule {
	return Rule{GroupSize: 4, FreePerGroup: 2, CouponName: "Buy 2 Get 2 (auto)"}
}

// Discount is a cart-wide, single-use monetary discount. Amount is always
// positive; a promotion that computes to zero yields no Discount at all.
type Discount struct {
	Amount money.Money
	Name   string
}

// unitGroup is a run of identically priced eligible units from one line.
// The engine works on these groups rather than expanding quantity into
// per-unit entries, so its cost scales with lines, not units.
type unitGroup struct {
	price money.Money
	count int64
}

// eligibleGroups collects the promotion-eligible lines as (price, count)
// groups plus the pooled unit total, irrespective of which line the units
// came from.
func eligibleGroups(items []cart.LineItem) ([]unitGroup, int64) {
	var groups []unitGroup
	var total int64
	for _, it := range items {
		if !it.Eligible || it.Quantity <= 0 {
			continue
		}
		groups = append(groups, unitGroup{price: it.UnitPrice, count: it.Quantity})
		total += it.Quantity
	}
	return groups, total
}

// EligibleUnitCount returns how many units across the cart count toward the
// promotion.
func EligibleUnitCount(items []cart.LineItem) int64 {
	_, total := eligibleGroups(items)
	return total
}

// FreeUnits returns how many units the rule makes free for the given eligible
// unit count. Only complete groups count; the remainder never contributes.
func (r Rule) FreeUnits(eligible int64) int64 {
	if r.GroupSize <= 0 || r.FreePerGroup <= 0 || eligible < int64(r.GroupSize) {
		return 0
	}
	return (eligible / int64(r.GroupSize)) * int64(r.FreePerGroup)
}

// Compute produces the promotion discount for a validated cart, or nil when
// the cart does not qualify. The discount amount is the price sum of the
// cheapest free units, so the customer always gets the maximum-value benefit
// regardless of purchase order. Deterministic for a given cart.
func (r Rule) Compute(items []cart.LineItem, currency money.Asset) *Discount {
	groups, totalUnits := eligibleGroups(items)
	free := r.FreeUnits(totalUnits)
	if free == 0 {
		return nil
	}
	if free > totalUnits {
		free = totalUnits
	}

	// Sort a copy; callers must never observe the reordering.
	sorted := append([]unitGroup(nil), groups...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].price.Atomic < sorted[j].price.Atomic })

	total := money.Zero(currency)
	remaining := free
	for _, g := range sorted {
		if remaining == 0 {
			break
		}
		take := g.count
		if take > remaining {
			take = remaining
		}
		chunk, err := g.price.MulInt(take)
		if err != nil {
			return nil
		}
		total, err = total.Add(chunk)
		if err != nil {
			return nil
		}
		remaining -= take
	}
	if total.Atomic <= 0 {
		return nil
	}
	return &Discount{Amount: total, Name: r.CouponName}
}

package usecase

import (
	"fmt"
	"sort"

	"project_billing/internal/domain/entities"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// sourceLink is a source to mark billed once the invoice exists.
type sourceLink struct {
	ref    entities.SourceRef
	lineID string
}

// lineBuilder accumulates ordered invoice lines together with the billing
// links they create.
type lineBuilder struct {
	items        []entities.InvoiceLineItem
	links        []sourceLink
	changeOrders []string
}

func (b *lineBuilder) add(li entities.InvoiceLineItem) string {
	li.ID = uuid.NewString()
	li.SortOrder = len(b.items)
	if li.Unit == "" {
		li.Unit = "each"
	}
	b.items = append(b.items, li)
	return li.ID
}

func (b *lineBuilder) header(title string, source entities.SourceType, sourceID string) string {
	return b.add(entities.InvoiceLineItem{
		Description:     title,
		Quantity:        decimal.NewFromInt(1),
		Unit:            "section",
		UnitPrice:       decimal.Zero,
		Total:           decimal.Zero,
		IsSectionHeader: true,
		SectionTitle:    title,
		SourceType:      source,
		SourceID:        sourceID,
	})
}

func (b *lineBuilder) link(ref entities.SourceRef, lineID string) {
	b.links = append(b.links, sourceLink{ref: ref, lineID: lineID})
}

func (b *lineBuilder) total() decimal.Decimal {
	return entities.SumLineItems(b.items)
}

func (b *lineBuilder) billableLines() int {
	n := 0
	for _, li := range b.items {
		if !li.IsSectionHeader {
			n++
		}
	}
	return n
}

// unitPrice keeps quantity × unit price consistent with an externally
// computed total.
func unitPrice(total, qty decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if qty.IsZero() {
		return decimal.NewFromInt(1), total
	}
	return qty, total.Div(qty).Round(4)
}

func estimateTitle(e entities.Estimate) string {
	if e.EstimateNumber != "" {
		return "Estimate #" + e.EstimateNumber
	}
	return "Estimate"
}

// addEstimateItems copies the given estimate lines. With reconcileTotal set
// a discount line brings the section to the estimate total_amount.
func (b *lineBuilder) addEstimateItems(e entities.Estimate, items []entities.EstimateLineItem, reconcileTotal bool) {
	b.header(estimateTitle(e), entities.SourceTypeEstimate, e.ID)
	sectionTotal := decimal.Zero
	for _, it := range items {
		qty, price := unitPrice(it.Total, it.Quantity)
		b.add(entities.InvoiceLineItem{
			Description: it.Description,
			Quantity:    qty,
			Unit:        it.Unit,
			UnitPrice:   price,
			Total:       it.Total,
			SourceType:  entities.SourceTypeEstimateLineItem,
			SourceID:    it.ID,
		})
		sectionTotal = sectionTotal.Add(it.Total)
	}
	if !reconcileTotal {
		return
	}
	if diff := e.TotalAmount.Sub(sectionTotal); !diff.IsZero() {
		b.add(entities.InvoiceLineItem{
			Description: discountLabel(e),
			Quantity:    decimal.NewFromInt(1),
			Unit:        "adjustment",
			UnitPrice:   diff,
			Total:       diff,
			SourceType:  entities.SourceTypeEstimate,
			SourceID:    e.ID,
		})
	}
}

func discountLabel(e entities.Estimate) string {
	switch e.DiscountType {
	case entities.DiscountTypePercentage:
		return fmt.Sprintf("Discount (%s%%)", e.DiscountValue.String())
	case entities.DiscountTypeFixed:
		return "Discount"
	}
	return "Estimate adjustment"
}

func (b *lineBuilder) addDeposit(e entities.Estimate, amount decimal.Decimal, label string) {
	b.add(entities.InvoiceLineItem{
		Description: label,
		Quantity:    decimal.NewFromInt(1),
		Unit:        "deposit",
		UnitPrice:   amount,
		Total:       amount,
		SourceType:  entities.SourceTypeDeposit,
		SourceID:    e.ID,
	})
}

// addChangeOrders emits one section per change order. A change order
// without line items is billed as a single line at its cost impact.
func (b *lineBuilder) addChangeOrders(cos []entities.ChangeOrder) {
	for _, co := range cos {
		title := fmt.Sprintf("Change Order #%s", co.CONumber)
		if co.Description != "" {
			title += ": " + co.Description
		}
		b.add(entities.InvoiceLineItem{
			Description:         title,
			Quantity:            decimal.NewFromInt(1),
			Unit:                "section",
			IsSectionHeader:     true,
			SectionTitle:        fmt.Sprintf("Change Order #%s", co.CONumber),
			SourceType:          entities.SourceTypeChangeOrder,
			SourceID:            co.ID,
			LinkedChangeOrderID: co.ID,
		})

		items := append([]entities.ChangeOrderLineItem(nil), co.LineItems...)
		sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })

		if len(items) == 0 {
			b.add(entities.InvoiceLineItem{
				Description:         title,
				Quantity:            decimal.NewFromInt(1),
				Unit:                "lump sum",
				UnitPrice:           co.CostImpact,
				Total:               co.CostImpact,
				SourceType:          entities.SourceTypeChangeOrder,
				SourceID:            co.ID,
				LinkedChangeOrderID: co.ID,
			})
		}
		for _, it := range items {
			lineID := b.add(entities.InvoiceLineItem{
				Description:         it.Description,
				Quantity:            it.Quantity,
				Unit:                it.Unit,
				UnitPrice:           it.UnitPrice,
				Total:               it.Total,
				SourceType:          entities.SourceTypeChangeOrderLineItem,
				SourceID:            it.ID,
				LinkedChangeOrderID: co.ID,
			})
			b.link(entities.SourceRef{Kind: entities.BillableChangeOrderLineItem, ID: it.ID, ParentID: co.ID}, lineID)
		}
		b.changeOrders = append(b.changeOrders, co.ID)
	}
}

// addExpenses bills each expense at its amount plus, when markup is
// positive, a separate markup line linked to the same expense.
func (b *lineBuilder) addExpenses(expenses []entities.Expense, markup decimal.Decimal, byCategory bool) {
	if !byCategory {
		b.header("Billable Expenses", entities.SourceTypeSection, "")
		for _, e := range expenses {
			b.addExpense(e, markup)
		}
		return
	}

	var order []string
	groups := map[string][]entities.Expense{}
	for _, e := range expenses {
		cat := e.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], e)
	}
	for _, cat := range order {
		b.header("Expenses: "+cat, entities.SourceTypeSection, "")
		for _, e := range groups[cat] {
			b.addExpense(e, markup)
		}
	}
}

func (b *lineBuilder) addExpense(e entities.Expense, markup decimal.Decimal) {
	lineID := b.add(entities.InvoiceLineItem{
		Description:     e.Description,
		Quantity:        decimal.NewFromInt(1),
		Unit:            "expense",
		UnitPrice:       e.Amount,
		Total:           e.Amount,
		SourceType:      entities.SourceTypeExpense,
		SourceID:        e.ID,
		LinkedExpenseID: e.ID,
	})
	b.link(entities.SourceRef{Kind: entities.BillableExpense, ID: e.ID}, lineID)

	if markup.IsPositive() {
		amount := entities.Percentage(e.Amount, markup)
		b.add(entities.InvoiceLineItem{
			Description:     fmt.Sprintf("Markup (%s%%) on %s", markup.String(), e.Description),
			Quantity:        decimal.NewFromInt(1),
			Unit:            "markup",
			UnitPrice:       amount,
			Total:           amount,
			SourceType:      entities.SourceTypeExpenseMarkup,
			SourceID:        e.ID,
			LinkedExpenseID: e.ID,
		})
	}
}

// jobGroup is the set of time entries billed under one job.
type jobGroup struct {
	job     entities.Job
	entries []entities.TimeEntry
}

func (g jobGroup) hours() decimal.Decimal {
	sum := decimal.Zero
	for _, te := range g.entries {
		sum = sum.Add(te.Hours)
	}
	return sum
}

func (g jobGroup) summary() string {
	return fmt.Sprintf("%s (%s hrs @ %s/hr)", g.job.Name, g.hours().String(), g.job.HourlyRate.StringFixed(2))
}

// addTimeEntries bills hours × hourly rate per job. In summary mode every
// entry of a job links to the job line; in detailed mode the job summary is
// a header and every entry gets its own line.
func (b *lineBuilder) addTimeEntries(groups []jobGroup, detailed bool) {
	if !detailed {
		b.header("Labor", entities.SourceTypeSection, "")
	}
	for _, g := range groups {
		if detailed {
			b.add(entities.InvoiceLineItem{
				Description:     g.summary(),
				Quantity:        decimal.NewFromInt(1),
				Unit:            "section",
				IsSectionHeader: true,
				SectionTitle:    g.job.Name,
				SourceType:      entities.SourceTypeJob,
				SourceID:        g.job.ID,
			})
			for _, te := range g.entries {
				desc := te.Date.Format("2006-01-02")
				if te.Description != "" {
					desc += " " + te.Description
				}
				lineID := b.add(entities.InvoiceLineItem{
					Description:       desc,
					Quantity:          te.Hours,
					Unit:              "hour",
					UnitPrice:         g.job.HourlyRate,
					Total:             entities.Money(te.Hours.Mul(g.job.HourlyRate)),
					SourceType:        entities.SourceTypeTimeEntry,
					SourceID:          te.ID,
					LinkedTimeEntryID: te.ID,
				})
				b.link(entities.SourceRef{Kind: entities.BillableTimeEntry, ID: te.ID}, lineID)
			}
			continue
		}

		hours := g.hours()
		lineID := b.add(entities.InvoiceLineItem{
			Description: g.summary(),
			Quantity:    hours,
			Unit:        "hour",
			UnitPrice:   g.job.HourlyRate,
			Total:       entities.Money(hours.Mul(g.job.HourlyRate)),
			SourceType:  entities.SourceTypeJob,
			SourceID:    g.job.ID,
		})
		for _, te := range g.entries {
			b.link(entities.SourceRef{Kind: entities.BillableTimeEntry, ID: te.ID}, lineID)
		}
	}
}

func sortEstimateItems(items []entities.EstimateLineItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
}

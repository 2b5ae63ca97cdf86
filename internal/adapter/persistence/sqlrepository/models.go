package sqlrepository

import (
	"time"

	"project_billing/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Models lists every table, in dependency order, for AutoMigrate.
var Models = []any{
	&ProjectModel{},
	&EstimateModel{},
	&EstimateLineItemModel{},
	&ChangeOrderModel{},
	&ChangeOrderLineItemModel{},
	&ExpenseModel{},
	&JobModel{},
	&TimeEntryModel{},
	&InvoiceModel{},
	&InvoiceLineItemModel{},
	&PaymentModel{},
	&LedgerEntryModel{},
	&BlueprintModel{},
	&BlueprintItemModel{},
	&SequenceModel{},
}

type ProjectModel struct {
	ID                    string          `gorm:"type:varchar(64);primaryKey"`
	PersonID              string          `gorm:"type:varchar(64)"`
	EstimateID            string          `gorm:"type:varchar(64)"`
	ProjectNumber         string          `gorm:"type:varchar(64)"`
	Name                  string          `gorm:"type:varchar(255)"`
	BudgetAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ActualCost            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalInvoicedAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPaymentsReceived decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`
}

func (ProjectModel) TableName() string { return "projects" }

func (m *ProjectModel) ToDomain() entities.Project {
	return entities.Project{
		ID:                    m.ID,
		PersonID:              m.PersonID,
		EstimateID:            m.EstimateID,
		ProjectNumber:         m.ProjectNumber,
		Name:                  m.Name,
		BudgetAmount:          m.BudgetAmount,
		ActualCost:            m.ActualCost,
		TotalInvoicedAmount:   m.TotalInvoicedAmount,
		TotalPaymentsReceived: m.TotalPaymentsReceived,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func ProjectModelFromDomain(p entities.Project) *ProjectModel {
	return &ProjectModel{
		ID:                    p.ID,
		PersonID:              p.PersonID,
		EstimateID:            p.EstimateID,
		ProjectNumber:         p.ProjectNumber,
		Name:                  p.Name,
		BudgetAmount:          p.BudgetAmount,
		ActualCost:            p.ActualCost,
		TotalInvoicedAmount:   p.TotalInvoicedAmount,
		TotalPaymentsReceived: p.TotalPaymentsReceived,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

type EstimateModel struct {
	ID                        string                  `gorm:"type:varchar(64);primaryKey"`
	EstimateNumber            string                  `gorm:"type:varchar(64)"`
	ProjectID                 string                  `gorm:"type:varchar(64);index"`
	PersonID                  string                  `gorm:"type:varchar(64)"`
	Status                    string                  `gorm:"type:varchar(32);not null"`
	SubtotalAmount            decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountType              string                  `gorm:"type:varchar(16)"`
	DiscountValue             decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount               decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	DepositRequired           bool                    `gorm:"not null;default:false"`
	DepositAmount             decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	DepositPercentage         decimal.Decimal         `gorm:"type:decimal(9,4);not null;default:0"`
	IsConvertedToBOV          bool                    `gorm:"column:is_converted_to_bov;not null;default:false"`
	IsInitialInvoiceGenerated bool                    `gorm:"not null;default:false"`
	BlueprintOfValuesID       string                  `gorm:"type:varchar(64)"`
	InitialInvoiceID          string                  `gorm:"type:varchar(64)"`
	UpdatedBy                 string                  `gorm:"type:varchar(128)"`
	LineItems                 []EstimateLineItemModel `gorm:"foreignKey:EstimateID"`
	CreatedAt                 time.Time               `gorm:"not null"`
	UpdatedAt                 time.Time               `gorm:"not null"`
}

func (EstimateModel) TableName() string { return "estimates" }

type EstimateLineItemModel struct {
	ID          string          `gorm:"type:varchar(64);primaryKey"`
	EstimateID  string          `gorm:"type:varchar(64);not null;index"`
	Description string          `gorm:"type:text"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit        string          `gorm:"type:varchar(32)"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Markup      decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SortOrder   int             `gorm:"not null;default:0"`
}

func (EstimateLineItemModel) TableName() string { return "estimate_line_items" }

func (m *EstimateModel) ToDomain() entities.Estimate {
	lines := make([]entities.EstimateLineItem, 0, len(m.LineItems))
	for _, li := range m.LineItems {
		lines = append(lines, entities.EstimateLineItem{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitCost:    li.UnitCost,
			Markup:      li.Markup,
			Total:       li.Total,
			SortOrder:   li.SortOrder,
		})
	}
	return entities.Estimate{
		ID:                        m.ID,
		EstimateNumber:            m.EstimateNumber,
		ProjectID:                 m.ProjectID,
		PersonID:                  m.PersonID,
		Status:                    entities.EstimateStatus(m.Status),
		SubtotalAmount:            m.SubtotalAmount,
		DiscountType:              entities.DiscountType(m.DiscountType),
		DiscountValue:             m.DiscountValue,
		TotalAmount:               m.TotalAmount,
		DepositRequired:           m.DepositRequired,
		DepositAmount:             m.DepositAmount,
		DepositPercentage:         m.DepositPercentage,
		IsConvertedToBOV:          m.IsConvertedToBOV,
		IsInitialInvoiceGenerated: m.IsInitialInvoiceGenerated,
		BlueprintOfValuesID:       m.BlueprintOfValuesID,
		InitialInvoiceID:          m.InitialInvoiceID,
		UpdatedBy:                 m.UpdatedBy,
		LineItems:                 lines,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

func EstimateModelFromDomain(e entities.Estimate) *EstimateModel {
	lines := make([]EstimateLineItemModel, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		lines = append(lines, EstimateLineItemModel{
			ID:          li.ID,
			EstimateID:  e.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			Unit:        li.Unit,
			UnitCost:    li.UnitCost,
			Markup:      li.Markup,
			Total:       li.Total,
			SortOrder:   li.SortOrder,
		})
	}
	return &EstimateModel{
		ID:                        e.ID,
		EstimateNumber:            e.EstimateNumber,
		ProjectID:                 e.ProjectID,
		PersonID:                  e.PersonID,
		Status:                    string(e.Status),
		SubtotalAmount:            e.SubtotalAmount,
		DiscountType:              string(e.DiscountType),
		DiscountValue:             e.DiscountValue,
		TotalAmount:               e.TotalAmount,
		DepositRequired:           e.DepositRequired,
		DepositAmount:             e.DepositAmount,
		DepositPercentage:         e.DepositPercentage,
		IsConvertedToBOV:          e.IsConvertedToBOV,
		IsInitialInvoiceGenerated: e.IsInitialInvoiceGenerated,
		BlueprintOfValuesID:       e.BlueprintOfValuesID,
		InitialInvoiceID:          e.InitialInvoiceID,
		UpdatedBy:                 e.UpdatedBy,
		LineItems:                 lines,
		CreatedAt:                 e.CreatedAt,
		UpdatedAt:                 e.UpdatedAt,
	}
}

type ChangeOrderModel struct {
	ID          string                     `gorm:"type:varchar(64);primaryKey"`
	CONumber    string                     `gorm:"column:co_number;type:varchar(64)"`
	ProjectID   string                     `gorm:"type:varchar(64);not null;index"`
	Description string                     `gorm:"type:text"`
	Status      string                     `gorm:"type:varchar(32);not null"`
	CostImpact  decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	Billed      bool                       `gorm:"not null;default:false"`
	InvoiceID   string                     `gorm:"type:varchar(64);index"`
	LineItems   []ChangeOrderLineItemModel `gorm:"foreignKey:ChangeOrderID"`
	CreatedAt   time.Time                  `gorm:"not null"`
	UpdatedAt   time.Time                  `gorm:"not null"`
}

func (ChangeOrderModel) TableName() string { return "change_orders" }

type ChangeOrderLineItemModel struct {
	ID                string          `gorm:"type:varchar(64);primaryKey"`
	ChangeOrderID     string          `gorm:"type:varchar(64);not null;index"`
	Description       string          `gorm:"type:text"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit              string          `gorm:"type:varchar(32)"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SortOrder         int             `gorm:"not null;default:0"`
	Billed            bool            `gorm:"not null;default:false"`
	InvoiceLineItemID string          `gorm:"type:varchar(64)"`
}

func (ChangeOrderLineItemModel) TableName() string { return "change_order_line_items" }

func (m *ChangeOrderModel) ToDomain() entities.ChangeOrder {
	lines := make([]entities.ChangeOrderLineItem, 0, len(m.LineItems))
	for _, li := range m.LineItems {
		lines = append(lines, entities.ChangeOrderLineItem{
			ID:                li.ID,
			Description:       li.Description,
			Quantity:          li.Quantity,
			Unit:              li.Unit,
			UnitPrice:         li.UnitPrice,
			Total:             li.Total,
			SortOrder:         li.SortOrder,
			Billed:            li.Billed,
			InvoiceLineItemID: li.InvoiceLineItemID,
		})
	}
	return entities.ChangeOrder{
		ID:          m.ID,
		CONumber:    m.CONumber,
		ProjectID:   m.ProjectID,
		Description: m.Description,
		Status:      entities.ChangeOrderStatus(m.Status),
		CostImpact:  m.CostImpact,
		Billed:      m.Billed,
		InvoiceID:   m.InvoiceID,
		LineItems:   lines,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ChangeOrderModelFromDomain(co entities.ChangeOrder) *ChangeOrderModel {
	lines := make([]ChangeOrderLineItemModel, 0, len(co.LineItems))
	for _, li := range co.LineItems {
		lines = append(lines, ChangeOrderLineItemModel{
			ID:                li.ID,
			ChangeOrderID:     co.ID,
			Description:       li.Description,
			Quantity:          li.Quantity,
			Unit:              li.Unit,
			UnitPrice:         li.UnitPrice,
			Total:             li.Total,
			SortOrder:         li.SortOrder,
			Billed:            li.Billed,
			InvoiceLineItemID: li.InvoiceLineItemID,
		})
	}
	return &ChangeOrderModel{
		ID:          co.ID,
		CONumber:    co.CONumber,
		ProjectID:   co.ProjectID,
		Description: co.Description,
		Status:      string(co.Status),
		CostImpact:  co.CostImpact,
		Billed:      co.Billed,
		InvoiceID:   co.InvoiceID,
		LineItems:   lines,
		CreatedAt:   co.CreatedAt,
		UpdatedAt:   co.UpdatedAt,
	}
}

type ExpenseModel struct {
	ID                string          `gorm:"type:varchar(64);primaryKey"`
	ProjectID         string          `gorm:"type:varchar(64);not null;index"`
	Description       string          `gorm:"type:text"`
	Category          string          `gorm:"type:varchar(64)"`
	ExpenseDate       time.Time       `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Billable          bool            `gorm:"not null"`
	Billed            bool            `gorm:"not null;default:false"`
	InvoiceID         string          `gorm:"type:varchar(64);index"`
	InvoiceLineItemID string          `gorm:"type:varchar(64)"`
	CreatedAt         time.Time       `gorm:"not null"`
}

func (ExpenseModel) TableName() string { return "expenses" }

func (m *ExpenseModel) ToDomain() entities.Expense {
	return entities.Expense{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		Description:       m.Description,
		Category:          m.Category,
		ExpenseDate:       m.ExpenseDate,
		Amount:            m.Amount,
		Billable:          m.Billable,
		Billed:            m.Billed,
		InvoiceID:         m.InvoiceID,
		InvoiceLineItemID: m.InvoiceLineItemID,
		CreatedAt:         m.CreatedAt,
	}
}

func ExpenseModelFromDomain(e entities.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:                e.ID,
		ProjectID:         e.ProjectID,
		Description:       e.Description,
		Category:          e.Category,
		ExpenseDate:       e.ExpenseDate,
		Amount:            e.Amount,
		Billable:          e.Billable,
		Billed:            e.Billed,
		InvoiceID:         e.InvoiceID,
		InvoiceLineItemID: e.InvoiceLineItemID,
		CreatedAt:         e.CreatedAt,
	}
}

type JobModel struct {
	ID         string          `gorm:"type:varchar(64);primaryKey"`
	ProjectID  string          `gorm:"type:varchar(64);not null;index"`
	Name       string          `gorm:"type:varchar(255)"`
	HourlyRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

func (JobModel) TableName() string { return "jobs" }

type TimeEntryModel struct {
	ID                string          `gorm:"type:varchar(64);primaryKey"`
	ProjectID         string          `gorm:"type:varchar(64);not null;index"`
	JobID             string          `gorm:"type:varchar(64);not null;index"`
	Date              time.Time       `gorm:"not null"`
	Description       string          `gorm:"type:text"`
	Hours             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Billable          bool            `gorm:"not null"`
	Billed            bool            `gorm:"not null;default:false"`
	InvoiceID         string          `gorm:"type:varchar(64);index"`
	InvoiceLineItemID string          `gorm:"type:varchar(64)"`
	CreatedAt         time.Time       `gorm:"not null"`
}

func (TimeEntryModel) TableName() string { return "time_entries" }

func (m *TimeEntryModel) ToDomain() entities.TimeEntry {
	return entities.TimeEntry{
		ID:                m.ID,
		ProjectID:         m.ProjectID,
		JobID:             m.JobID,
		Date:              m.Date,
		Description:       m.Description,
		Hours:             m.Hours,
		Billable:          m.Billable,
		Billed:            m.Billed,
		InvoiceID:         m.InvoiceID,
		InvoiceLineItemID: m.InvoiceLineItemID,
		CreatedAt:         m.CreatedAt,
	}
}

func TimeEntryModelFromDomain(te entities.TimeEntry) *TimeEntryModel {
	return &TimeEntryModel{
		ID:                te.ID,
		ProjectID:         te.ProjectID,
		JobID:             te.JobID,
		Date:              te.Date,
		Description:       te.Description,
		Hours:             te.Hours,
		Billable:          te.Billable,
		Billed:            te.Billed,
		InvoiceID:         te.InvoiceID,
		InvoiceLineItemID: te.InvoiceLineItemID,
		CreatedAt:         te.CreatedAt,
	}
}

type InvoiceModel struct {
	ID            string                 `gorm:"type:varchar(64);primaryKey"`
	InvoiceNumber string                 `gorm:"type:varchar(32);uniqueIndex"`
	ProjectID     string                 `gorm:"type:varchar(64);not null;index"`
	PersonID      string                 `gorm:"type:varchar(64)"`
	Status        string                 `gorm:"type:varchar(32);not null"`
	InvoiceType   string                 `gorm:"type:varchar(32);not null"`
	IssueDate     time.Time              `gorm:"not null"`
	DueDate       *time.Time             `gorm:"index"`
	TotalAmount   decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid    decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Notes         string                 `gorm:"type:text"`
	CreatedBy     string                 `gorm:"type:varchar(128)"`
	LineItems     []InvoiceLineItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time              `gorm:"not null"`
	UpdatedAt     time.Time              `gorm:"not null"`
}

func (InvoiceModel) TableName() string { return "invoices" }

type InvoiceLineItemModel struct {
	ID                  string          `gorm:"type:varchar(64);primaryKey"`
	InvoiceID           string          `gorm:"type:varchar(64);not null;index"`
	Description         string          `gorm:"type:text"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit                string          `gorm:"type:varchar(32)"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total               decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SortOrder           int             `gorm:"not null;default:0"`
	IsSectionHeader     bool            `gorm:"not null;default:false"`
	SectionTitle        string          `gorm:"type:varchar(255)"`
	SourceType          string          `gorm:"type:varchar(32)"`
	SourceID            string          `gorm:"type:varchar(64)"`
	LinkedExpenseID     string          `gorm:"type:varchar(64)"`
	LinkedTimeEntryID   string          `gorm:"type:varchar(64)"`
	LinkedChangeOrderID string          `gorm:"type:varchar(64)"`
}

func (InvoiceLineItemModel) TableName() string { return "invoice_line_items" }

func (m *InvoiceModel) ToDomain() entities.Invoice {
	lines := make([]entities.InvoiceLineItem, 0, len(m.LineItems))
	for _, li := range m.LineItems {
		lines = append(lines, li.ToDomain())
	}
	inv := entities.Invoice{
		ID:            m.ID,
		InvoiceNumber: m.InvoiceNumber,
		ProjectID:     m.ProjectID,
		PersonID:      m.PersonID,
		Status:        entities.InvoiceStatus(m.Status),
		InvoiceType:   entities.InvoiceType(m.InvoiceType),
		IssueDate:     m.IssueDate,
		TotalAmount:   m.TotalAmount,
		AmountPaid:    m.AmountPaid,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		LineItems:     lines,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.DueDate != nil {
		inv.DueDate = *m.DueDate
	}
	return inv
}

func (m *InvoiceLineItemModel) ToDomain() entities.InvoiceLineItem {
	return entities.InvoiceLineItem{
		ID:                  m.ID,
		InvoiceID:           m.InvoiceID,
		Description:         m.Description,
		Quantity:            m.Quantity,
		Unit:                m.Unit,
		UnitPrice:           m.UnitPrice,
		Total:               m.Total,
		SortOrder:           m.SortOrder,
		IsSectionHeader:     m.IsSectionHeader,
		SectionTitle:        m.SectionTitle,
		SourceType:          entities.SourceType(m.SourceType),
		SourceID:            m.SourceID,
		LinkedExpenseID:     m.LinkedExpenseID,
		LinkedTimeEntryID:   m.LinkedTimeEntryID,
		LinkedChangeOrderID: m.LinkedChangeOrderID,
	}
}

func invoiceLineItemModels(invoiceID string, items []entities.InvoiceLineItem) []InvoiceLineItemModel {
	out := make([]InvoiceLineItemModel, 0, len(items))
	for _, li := range items {
		out = append(out, InvoiceLineItemModel{
			ID:                  li.ID,
			InvoiceID:           invoiceID,
			Description:         li.Description,
			Quantity:            li.Quantity,
			Unit:                li.Unit,
			UnitPrice:           li.UnitPrice,
			Total:               li.Total,
			SortOrder:           li.SortOrder,
			IsSectionHeader:     li.IsSectionHeader,
			SectionTitle:        li.SectionTitle,
			SourceType:          string(li.SourceType),
			SourceID:            li.SourceID,
			LinkedExpenseID:     li.LinkedExpenseID,
			LinkedTimeEntryID:   li.LinkedTimeEntryID,
			LinkedChangeOrderID: li.LinkedChangeOrderID,
		})
	}
	return out
}

func InvoiceModelFromDomain(inv entities.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ProjectID:     inv.ProjectID,
		PersonID:      inv.PersonID,
		Status:        string(inv.Status),
		InvoiceType:   string(inv.InvoiceType),
		IssueDate:     inv.IssueDate,
		TotalAmount:   inv.TotalAmount,
		AmountPaid:    inv.AmountPaid,
		Notes:         inv.Notes,
		CreatedBy:     inv.CreatedBy,
		LineItems:     invoiceLineItemModels(inv.ID, inv.LineItems),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if !inv.DueDate.IsZero() {
		due := inv.DueDate
		m.DueDate = &due
	}
	return m
}

type PaymentModel struct {
	ID          string          `gorm:"type:varchar(64);primaryKey"`
	InvoiceID   string          `gorm:"type:varchar(64);not null;index"`
	ProjectID   string          `gorm:"type:varchar(64);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentDate time.Time       `gorm:"not null"`
	Method      string          `gorm:"type:varchar(32)"`
	Reference   string          `gorm:"type:varchar(128)"`
	Notes       string          `gorm:"type:text"`
	Actor       string          `gorm:"type:varchar(128)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) ToDomain() entities.Payment {
	return entities.Payment{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		ProjectID:   m.ProjectID,
		Amount:      m.Amount,
		PaymentDate: m.PaymentDate,
		Method:      entities.PaymentMethod(m.Method),
		Reference:   m.Reference,
		Notes:       m.Notes,
		Actor:       m.Actor,
		CreatedAt:   m.CreatedAt,
	}
}

func PaymentModelFromDomain(p entities.Payment) *PaymentModel {
	return &PaymentModel{
		ID:          p.ID,
		InvoiceID:   p.InvoiceID,
		ProjectID:   p.ProjectID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      string(p.Method),
		Reference:   p.Reference,
		Notes:       p.Notes,
		Actor:       p.Actor,
		CreatedAt:   p.CreatedAt,
	}
}

type LedgerEntryModel struct {
	ID              string          `gorm:"type:varchar(64);primaryKey"`
	ProjectID       string          `gorm:"type:varchar(64);not null;index:idx_ledger_project_created,priority:1"`
	TransactionType string          `gorm:"type:varchar(64);not null"`
	TransactionID   string          `gorm:"type:varchar(128)"`
	Field           string          `gorm:"type:varchar(64);not null"`
	AmountImpact    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description     string          `gorm:"type:text"`
	Actor           string          `gorm:"type:varchar(128)"`
	NewActualCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NewBudgetAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt       time.Time       `gorm:"not null;index:idx_ledger_project_created,priority:2"`
}

func (LedgerEntryModel) TableName() string { return "project_ledger" }

func (m *LedgerEntryModel) ToDomain() entities.LedgerEntry {
	return entities.LedgerEntry{
		ID:              m.ID,
		ProjectID:       m.ProjectID,
		TransactionType: entities.TransactionType(m.TransactionType),
		TransactionID:   m.TransactionID,
		Field:           entities.ProjectField(m.Field),
		AmountImpact:    m.AmountImpact,
		Description:     m.Description,
		Actor:           m.Actor,
		NewActualCost:   m.NewActualCost,
		NewBudgetAmount: m.NewBudgetAmount,
		CreatedAt:       m.CreatedAt,
	}
}

func LedgerEntryModelFromDomain(e entities.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		TransactionType: string(e.TransactionType),
		TransactionID:   e.TransactionID,
		Field:           string(e.Field),
		AmountImpact:    e.AmountImpact,
		Description:     e.Description,
		Actor:           e.Actor,
		NewActualCost:   e.NewActualCost,
		NewBudgetAmount: e.NewBudgetAmount,
		CreatedAt:       e.CreatedAt,
	}
}

type BlueprintModel struct {
	ID          string               `gorm:"type:varchar(64);primaryKey"`
	BOVNumber   string               `gorm:"column:bov_number;type:varchar(32);uniqueIndex"`
	ProjectID   string               `gorm:"type:varchar(64);not null;index"`
	EstimateID  string               `gorm:"type:varchar(64);not null;index"`
	Name        string               `gorm:"type:varchar(255)"`
	Status      string               `gorm:"type:varchar(32);not null"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Items       []BlueprintItemModel `gorm:"foreignKey:BlueprintID"`
	CreatedAt   time.Time            `gorm:"not null"`
}

func (BlueprintModel) TableName() string { return "blueprints_of_values" }

type BlueprintItemModel struct {
	ID                    string          `gorm:"type:varchar(64);primaryKey"`
	BlueprintID           string          `gorm:"column:bov_id;type:varchar(64);not null;index"`
	EstimateLineItemID    string          `gorm:"type:varchar(64)"`
	ChangeOrderLineItemID string          `gorm:"type:varchar(64)"`
	Description           string          `gorm:"type:text"`
	Quantity              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Unit                  string          `gorm:"type:varchar(32)"`
	UnitPrice             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ScheduledValue        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsBilled              bool            `gorm:"not null;default:false"`
	SortOrder             int             `gorm:"not null;default:0"`
}

func (BlueprintItemModel) TableName() string { return "blueprint_items" }

func (m *BlueprintModel) ToDomain() entities.BlueprintOfValues {
	items := make([]entities.BlueprintItem, 0, len(m.Items))
	for _, bi := range m.Items {
		items = append(items, entities.BlueprintItem{
			ID:                    bi.ID,
			BlueprintID:           bi.BlueprintID,
			EstimateLineItemID:    bi.EstimateLineItemID,
			ChangeOrderLineItemID: bi.ChangeOrderLineItemID,
			Description:           bi.Description,
			Quantity:              bi.Quantity,
			Unit:                  bi.Unit,
			UnitPrice:             bi.UnitPrice,
			ScheduledValue:        bi.ScheduledValue,
			IsBilled:              bi.IsBilled,
			SortOrder:             bi.SortOrder,
		})
	}
	return entities.BlueprintOfValues{
		ID:          m.ID,
		BOVNumber:   m.BOVNumber,
		ProjectID:   m.ProjectID,
		EstimateID:  m.EstimateID,
		Name:        m.Name,
		Status:      entities.BlueprintStatus(m.Status),
		TotalAmount: m.TotalAmount,
		Items:       items,
		CreatedAt:   m.CreatedAt,
	}
}

func BlueprintModelFromDomain(b entities.BlueprintOfValues) *BlueprintModel {
	items := make([]BlueprintItemModel, 0, len(b.Items))
	for _, bi := range b.Items {
		items = append(items, BlueprintItemModel{
			ID:                    bi.ID,
			BlueprintID:           b.ID,
			EstimateLineItemID:    bi.EstimateLineItemID,
			ChangeOrderLineItemID: bi.ChangeOrderLineItemID,
			Description:           bi.Description,
			Quantity:              bi.Quantity,
			Unit:                  bi.Unit,
			UnitPrice:             bi.UnitPrice,
			ScheduledValue:        bi.ScheduledValue,
			IsBilled:              bi.IsBilled,
			SortOrder:             bi.SortOrder,
		})
	}
	return &BlueprintModel{
		ID:          b.ID,
		BOVNumber:   b.BOVNumber,
		ProjectID:   b.ProjectID,
		EstimateID:  b.EstimateID,
		Name:        b.Name,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		Items:       items,
		CreatedAt:   b.CreatedAt,
	}
}

// SequenceModel is one named counter, e.g. "INV2610".
type SequenceModel struct {
	Name         string `gorm:"type:varchar(64);primaryKey"`
	CurrentValue int64  `gorm:"not null;default:0"`
}

func (SequenceModel) TableName() string { return "sequences" }

package report

// PreviewLabel marks a rendered report that carries no committed correlative
const PreviewLabel = "(Vista Previa)"

// ReportView is the structured result of rendering a dataset with a label.
// It is what handlers return and what the HTML template consumes.
type ReportView struct {
	Label           string              `json:"label"`
	CompanyName     string              `json:"company_name"`
	PeriodFrom      string              `json:"period_from,omitempty"`
	PeriodTo        string              `json:"period_to,omitempty"`
	Requisition     string              `json:"requisition,omitempty"`
	GeneratedAt     string              `json:"generated_at"`
	Currency        string              `json:"currency"`
	Disbursements   []ReportLine        `json:"disbursements"`
	Reconciliations []ReportLine        `json:"reconciliations"`
	TotalDisbursed  string              `json:"total_disbursed"`
	TotalReconciled string              `json:"total_reconciled"`
	Balance         string              `json:"balance"`
	BalanceNegative bool                `json:"balance_negative"`
}

// ReportLine is one formatted row in a rendered report table
type ReportLine struct {
	Date        string `json:"date"`
	Party       string `json:"party"`
	Detail      string `json:"detail"`
	Reference   string `json:"reference,omitempty"`
	Amount      string `json:"amount"`
}

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"
)

// IsPreview reports whether the view carries the preview label rather than
// a correlative
func (v *ReportView) IsPreview() bool {
	return v.Label == PreviewLabel
}

// Render produces a ReportView from a dataset and a label. It only reads the
// dataset, so rendering the same dataset with a different label yields the
// same body under the new heading.
func Render(dataset *ReportDataset, label string) ReportView {
	view := ReportView{
		Label:       label,
		CompanyName: dataset.Company.Name,
		Requisition: dataset.Filter.RequisitionNumber,
		GeneratedAt: dataset.GeneratedAt.Format(dateTimeLayout),
		Currency:    dataset.Currency,
	}
	if dataset.Filter.FromDate != nil {
		view.PeriodFrom = dataset.Filter.FromDate.Format(dateLayout)
	}
	if dataset.Filter.ToDate != nil {
		view.PeriodTo = dataset.Filter.ToDate.Format(dateLayout)
	}

	view.Disbursements = make([]ReportLine, 0, len(dataset.Disbursements))
	for _, row := range dataset.Disbursements {
		view.Disbursements = append(view.Disbursements, ReportLine{
			Date:      row.Date.Format(dateLayout),
			Party:     row.Responsible,
			Detail:    row.Description,
			Reference: row.PaymentMethod,
			Amount:    row.Amount.StringFixed(2),
		})
	}

	view.Reconciliations = make([]ReportLine, 0, len(dataset.Reconciliations))
	for _, row := range dataset.Reconciliations {
		view.Reconciliations = append(view.Reconciliations, ReportLine{
			Date:      row.Date.Format(dateLayout),
			Party:     row.Vendor,
			Detail:    row.Category,
			Reference: row.DocumentLabel,
			Amount:    row.Amount.StringFixed(2),
		})
	}

	view.TotalDisbursed = dataset.Balance.TotalDisbursed.StringFixed(2)
	view.TotalReconciled = dataset.Balance.TotalReconciled.StringFixed(2)
	view.Balance = dataset.Balance.Balance.StringFixed(2)
	view.BalanceNegative = dataset.Balance.Balance.IsNegative()

	return view
}

// RenderPreview renders the dataset under the preview label
func RenderPreview(dataset *ReportDataset) ReportView {
	return Render(dataset, PreviewLabel)
}

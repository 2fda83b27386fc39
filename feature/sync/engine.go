package sync

import (
	"fmt"
	"time"

	"estimate-manager/core/idgen"
	"estimate-manager/core/models"
	"estimate-manager/core/sanitize"

	"go.uber.org/zap"
)

// Sheet names of the source workbook. Every sheet is optional; a workbook in
// an earlier lifecycle stage is synced with whatever sheets it carries.
const (
	SheetCustomers = "顧客マスタ"
	SheetProjects  = "案件管理"
	SheetInvoices  = "請求管理"
	SheetWorkItems = "工事項目DB"
	SheetPayments  = "支払管理"
)

// Result summarizes one synchronization run. Counts reflect rows processed,
// not rows newly created, so a repeated run reports the same numbers.
type Result struct {
	WorkbookPath      string `json:"workbook_path"`
	CustomersUpserted int    `json:"customers_upserted"`
	ProjectsUpserted  int    `json:"projects_upserted"`
	InvoicesUpserted  int    `json:"invoices_upserted"`
	PaymentsUpserted  int    `json:"payments_upserted"`
	WorkItemsUpserted int    `json:"work_items_upserted"`
}

// Reconciler replays a workbook into the store. It holds no connection of its
// own: all persistence goes through the Store handed to Run, and the caller
// decides the transaction boundary.
type Reconciler struct {
	log *zap.Logger
}

func NewReconciler(log *zap.Logger) *Reconciler {
	return &Reconciler{log: log}
}

// Run reconciles every known sheet of the workbook into the store, in
// dependency order. Rows overwrite only the columns their sheet owns.
func (r *Reconciler) Run(wb *Workbook, store Store) (*Result, error) {
	result := &Result{WorkbookPath: wb.Path()}

	var err error
	if result.CustomersUpserted, err = r.syncCustomers(wb, store); err != nil {
		return nil, fmt.Errorf("customers sheet: %w", err)
	}
	if result.ProjectsUpserted, err = r.syncProjects(wb, store); err != nil {
		return nil, fmt.Errorf("projects sheet: %w", err)
	}
	if result.InvoicesUpserted, err = r.syncInvoices(wb, store); err != nil {
		return nil, fmt.Errorf("invoices sheet: %w", err)
	}
	if result.WorkItemsUpserted, err = r.syncWorkItems(wb, store); err != nil {
		return nil, fmt.Errorf("work items sheet: %w", err)
	}
	if result.PaymentsUpserted, err = r.syncPayments(wb, store); err != nil {
		return nil, fmt.Errorf("payments sheet: %w", err)
	}

	r.log.Info("workbook reconciled",
		zap.String("path", result.WorkbookPath),
		zap.Int("customers", result.CustomersUpserted),
		zap.Int("projects", result.ProjectsUpserted),
		zap.Int("invoices", result.InvoicesUpserted),
		zap.Int("payments", result.PaymentsUpserted),
		zap.Int("work_items", result.WorkItemsUpserted),
	)
	return result, nil
}

func (r *Reconciler) syncCustomers(wb *Workbook, store Store) (int, error) {
	if !wb.HasSheet(SheetCustomers) {
		return 0, nil
	}

	count := 0
	for row := headerRows + 1; row <= wb.LastRow(SheetCustomers); row++ {
		customerID := ToText(wb.Cell(SheetCustomers, row, 1))
		customerName := ToText(wb.Cell(SheetCustomers, row, 3))
		if customerID == nil || customerName == nil {
			continue
		}

		customer, err := store.FindCustomer(*customerID)
		if err != nil {
			return count, err
		}
		if customer == nil {
			customer = &models.Customer{CustomerID: *customerID}
		}
		customer.CustomerName = *customerName
		customer.ContactName = ToText(wb.Cell(SheetCustomers, row, 5))
		customer.Status = TextOr(wb.Cell(SheetCustomers, row, 18), models.DefaultCustomerStatus)
		if err := store.SaveCustomer(customer); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// projectRow carries one parsed row of the project ledger between the
// collection pass and the write pass.
type projectRow struct {
	projectID    string
	customerID   string
	customerName string
	projectName  string
	sheetName    string
	siteAddress  *string
	ownerName    string
	marginRate   float64
	status       string
	createdAt    time.Time
}

func (r *Reconciler) syncProjects(wb *Workbook, store Store) (int, error) {
	if !wb.HasSheet(SheetProjects) {
		return 0, nil
	}

	// Pass 1: parse rows and collect the customers they reference. Rows with
	// a blank customer column attach to the reserved placeholder customer.
	var rows []projectRow
	referenced := map[string]string{}
	for row := headerRows + 1; row <= wb.LastRow(SheetProjects); row++ {
		projectID := TextOr(wb.Cell(SheetProjects, row, 1), "")
		if len(projectID) < 2 || projectID[:2] != "P-" {
			continue
		}

		customerID := TextOr(wb.Cell(SheetProjects, row, 2), models.PlaceholderCustomerID)
		customerName := TextOr(wb.Cell(SheetProjects, row, 3), models.PlaceholderCustomerName)
		projectName := TextOr(wb.Cell(SheetProjects, row, 4),
			TextOr(wb.Cell(SheetProjects, row, 32), models.DefaultProjectName))

		marginRate := ToFloat(wb.Cell(SheetProjects, row, 8), models.DefaultMarginRate)
		if marginRate <= 0 {
			marginRate = models.DefaultMarginRate
		}
		createdAt := time.Now().UTC()
		if d := ToDate(wb.Cell(SheetProjects, row, 19)); d != nil {
			createdAt = *d
		}

		rows = append(rows, projectRow{
			projectID:    projectID,
			customerID:   customerID,
			customerName: customerName,
			projectName:  projectName,
			sheetName:    sanitize.SheetName(projectID+"_"+projectName, projectID+"_案件"),
			siteAddress:  ToText(wb.Cell(SheetProjects, row, 31)),
			ownerName:    TextOr(wb.Cell(SheetProjects, row, 13), models.DefaultOwnerName),
			marginRate:   marginRate,
			status:       TextOr(wb.Cell(SheetProjects, row, 9), models.DefaultProjectStatus),
			createdAt:    DateOnly(createdAt),
		})
		if _, seen := referenced[customerID]; !seen {
			referenced[customerID] = customerName
		}
	}

	if err := r.ensureCustomers(store, referenced); err != nil {
		return 0, err
	}

	// Pass 2: upsert projects now that every parent resolves. Sheet names are
	// disambiguated against the stored ones so truncation cannot collide.
	names, err := store.ProjectSheetNames()
	if err != nil {
		return 0, err
	}
	taken := make(map[string]struct{}, len(names))
	for _, name := range names {
		taken[name] = struct{}{}
	}

	count := 0
	for _, pr := range rows {
		project, err := store.FindProject(pr.projectID)
		if err != nil {
			return count, err
		}
		if project == nil {
			project = &models.Project{ProjectID: pr.projectID}
		} else {
			delete(taken, project.ProjectSheetName)
		}
		sheetName := sanitize.UniqueSheetName(pr.sheetName, taken)
		taken[sheetName] = struct{}{}
		project.ProjectSheetName = sheetName
		project.CustomerID = pr.customerID
		project.CustomerName = pr.customerName
		project.ProjectName = pr.projectName
		project.SiteAddress = pr.siteAddress
		project.OwnerName = pr.ownerName
		project.TargetMarginRate = pr.marginRate
		project.ProjectStatus = pr.status
		project.CreatedAt = pr.createdAt
		if err := store.SaveProject(project); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// ensureCustomers creates every referenced customer that is not in the store
// yet, including the placeholder when referenced. Existing customers are left
// untouched; the project ledger does not own customer columns.
func (r *Reconciler) ensureCustomers(store Store, referenced map[string]string) error {
	for customerID, customerName := range referenced {
		existing, err := store.FindCustomer(customerID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		customer := &models.Customer{
			CustomerID:   customerID,
			CustomerName: customerName,
			Status:       models.DefaultCustomerStatus,
		}
		if customerID == models.PlaceholderCustomerID {
			customer.CustomerName = models.PlaceholderCustomerName
			customer.Status = models.PlaceholderCustomerStatus
		}
		r.log.Debug("creating referenced customer", zap.String("customer_id", customerID))
		if err := store.SaveCustomer(customer); err != nil {
			return err
		}
	}
	return nil
}

// ensureProjects creates a stub project for every referenced project key
// absent from the store, attached to the placeholder customer. stubNames maps
// a key to the display name gleaned from the referencing row, which may be
// empty.
func (r *Reconciler) ensureProjects(store Store, stubNames map[string]string) error {
	needsPlaceholder := false
	for projectID := range stubNames {
		existing, err := store.FindProject(projectID)
		if err != nil {
			return err
		}
		if existing != nil {
			delete(stubNames, projectID)
			continue
		}
		needsPlaceholder = true
	}
	if !needsPlaceholder {
		return nil
	}

	if err := r.ensureCustomers(store, map[string]string{
		models.PlaceholderCustomerID: models.PlaceholderCustomerName,
	}); err != nil {
		return err
	}
	for projectID, name := range stubNames {
		if name == "" {
			name = projectID
		}
		r.log.Debug("creating stub project", zap.String("project_id", projectID))
		project := &models.Project{
			ProjectID:        projectID,
			ProjectSheetName: sanitize.SheetName(projectID, projectID+"_案件"),
			CustomerID:       models.PlaceholderCustomerID,
			CustomerName:     models.PlaceholderCustomerName,
			ProjectName:      name,
			OwnerName:        models.DefaultOwnerName,
			TargetMarginRate: models.DefaultMarginRate,
			ProjectStatus:    models.DefaultProjectStatus,
			CreatedAt:        DateOnly(time.Now().UTC()),
		}
		if err := store.SaveProject(project); err != nil {
			return err
		}
	}
	return nil
}

// invoiceRow carries one parsed row of the invoice ledger.
type invoiceRow struct {
	invoiceID string
	projectID string
	amount    float64
	billedAt  *time.Time
	note      *string
}

func (r *Reconciler) syncInvoices(wb *Workbook, store Store) (int, error) {
	if !wb.HasSheet(SheetInvoices) {
		return 0, nil
	}

	// Pass 1: parse rows and collect referenced project keys. IDs that never
	// resolved past their formula are replaced by a row-positional one.
	var rows []invoiceRow
	stubNames := map[string]string{}
	for row := headerRows + 1; row <= wb.LastRow(SheetInvoices); row++ {
		projectID := ToText(wb.Cell(SheetInvoices, row, 2))
		if projectID == nil {
			continue
		}

		invoiceID := TextOr(wb.Cell(SheetInvoices, row, 1), "")
		if invoiceID == "" || invoiceID[0] == '=' {
			invoiceID = idgen.RowID(idgen.InvoicePrefix, row-headerRows)
		}

		rows = append(rows, invoiceRow{
			invoiceID: invoiceID,
			projectID: *projectID,
			amount:    ToFloat(wb.Cell(SheetInvoices, row, 7), 0),
			billedAt:  ToDate(wb.Cell(SheetInvoices, row, 5)),
			note:      ToText(wb.Cell(SheetInvoices, row, 12)),
		})
		if _, seen := stubNames[*projectID]; !seen {
			stubNames[*projectID] = TextOr(wb.Cell(SheetInvoices, row, 3), "")
		}
	}

	if err := r.ensureProjects(store, stubNames); err != nil {
		return 0, err
	}

	count := 0
	for _, ir := range rows {
		invoice, err := store.FindInvoice(ir.invoiceID)
		if err != nil {
			return count, err
		}
		if invoice == nil {
			invoice = &models.Invoice{InvoiceID: ir.invoiceID}
		}
		invoice.ProjectID = ir.projectID
		invoice.InvoiceAmount = ir.amount
		invoice.Note = ir.note
		if ir.billedAt != nil {
			invoice.BilledAt = ir.billedAt
		} else if invoice.BilledAt == nil {
			now := DateOnly(time.Now().UTC())
			invoice.BilledAt = &now
		}
		invoice.RemainingAmount = models.ClampRemaining(invoice.InvoiceAmount, invoice.PaidAmount)
		invoice.Status = models.DeriveInvoiceStatus(invoice.InvoiceAmount, invoice.PaidAmount)
		if err := store.SaveInvoice(invoice); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (r *Reconciler) syncWorkItems(wb *Workbook, store Store) (int, error) {
	if !wb.HasSheet(SheetWorkItems) {
		return 0, nil
	}

	count := 0
	for row := headerRows + 1; row <= wb.LastRow(SheetWorkItems); row++ {
		category := ToText(wb.Cell(SheetWorkItems, row, 2))
		itemName := ToText(wb.Cell(SheetWorkItems, row, 3))
		if category == nil || itemName == nil {
			continue
		}

		sourceItemID := ToInt(wb.Cell(SheetWorkItems, row, 1))

		var item *models.WorkItemMaster
		var err error
		if sourceItemID != nil {
			if item, err = store.FindWorkItemBySourceID(*sourceItemID); err != nil {
				return count, err
			}
		}
		if item == nil {
			if item, err = store.FindWorkItemByName(*category, *itemName); err != nil {
				return count, err
			}
		}
		if item == nil {
			item = &models.WorkItemMaster{}
		}

		item.SourceItemID = sourceItemID
		item.Category = *category
		item.ItemName = *itemName
		item.Specification = ToText(wb.Cell(SheetWorkItems, row, 4))
		item.Unit = ToText(wb.Cell(SheetWorkItems, row, 5))
		item.StandardUnitPrice = ToFloat(wb.Cell(SheetWorkItems, row, 6), 0)
		item.DefaultVendorName = ToText(wb.Cell(SheetWorkItems, row, 7))
		if margin := ToText(wb.Cell(SheetWorkItems, row, 9)); margin != nil {
			rate := ToFloat(*margin, 0)
			item.MarginRate = &rate
		} else {
			item.MarginRate = nil
		}
		if err := store.SaveWorkItem(item); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// paymentRow carries one parsed row of the payment ledger.
type paymentRow struct {
	paymentID       string
	projectID       string
	vendorID        *string
	vendorName      *string
	workDescription *string
	ordered         float64
	paid            float64
	remaining       float64
	status          *string
	note            *string
	paidAt          *time.Time
}

func (r *Reconciler) syncPayments(wb *Workbook, store Store) (int, error) {
	if !wb.HasSheet(SheetPayments) {
		return 0, nil
	}

	var rows []paymentRow
	stubNames := map[string]string{}
	for row := headerRows + 1; row <= wb.LastRow(SheetPayments); row++ {
		projectID := ToText(wb.Cell(SheetPayments, row, 2))
		if projectID == nil {
			continue
		}

		paymentID := TextOr(wb.Cell(SheetPayments, row, 1), "")
		if paymentID == "" || paymentID[0] == '=' {
			paymentID = idgen.RowID(idgen.PaymentPrefix, row-headerRows)
		}

		ordered := ToFloat(wb.Cell(SheetPayments, row, 7), 0)
		paid := ToFloat(wb.Cell(SheetPayments, row, 9), 0)
		// The remaining column is trusted when populated, recomputed when
		// blank, and clamped at zero either way.
		remaining := ToFloat(wb.Cell(SheetPayments, row, 10), ordered-paid)
		if remaining < 0 {
			remaining = 0
		}

		rows = append(rows, paymentRow{
			paymentID:       paymentID,
			projectID:       *projectID,
			vendorID:        ToText(wb.Cell(SheetPayments, row, 3)),
			vendorName:      ToText(wb.Cell(SheetPayments, row, 4)),
			workDescription: ToText(wb.Cell(SheetPayments, row, 5)),
			ordered:         ordered,
			paid:            paid,
			remaining:       remaining,
			status:          ToText(wb.Cell(SheetPayments, row, 11)),
			note:            ToText(wb.Cell(SheetPayments, row, 13)),
			paidAt:          ToDate(wb.Cell(SheetPayments, row, 8)),
		})
		if _, seen := stubNames[*projectID]; !seen {
			stubNames[*projectID] = TextOr(wb.Cell(SheetPayments, row, 5), "")
		}
	}

	if err := r.ensureProjects(store, stubNames); err != nil {
		return 0, err
	}

	count := 0
	for _, pr := range rows {
		payment, err := store.FindPayment(pr.paymentID)
		if err != nil {
			return count, err
		}
		if payment == nil {
			payment = &models.Payment{PaymentID: pr.paymentID}
		}
		payment.ProjectID = pr.projectID
		payment.VendorID = pr.vendorID
		payment.VendorName = pr.vendorName
		payment.WorkDescription = pr.workDescription
		payment.OrderedAmount = pr.ordered
		payment.PaidAmount = pr.paid
		payment.RemainingAmount = pr.remaining
		payment.Status = pr.status
		payment.Note = pr.note
		payment.PaidAt = pr.paidAt
		if err := store.SavePayment(payment); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

package sync

import (
	"errors"

	"estimate-manager/core/models"

	"gorm.io/gorm"
)

// Store is the unit-of-work contract the reconciliation engine writes
// through. Implementations scope every call to one transaction so a pass
// commits exactly once: lookups observe earlier writes of the same pass, but
// nothing becomes durable until the transaction commits.
type Store interface {
	FindCustomer(customerID string) (*models.Customer, error)
	SaveCustomer(customer *models.Customer) error

	FindProject(projectID string) (*models.Project, error)
	SaveProject(project *models.Project) error
	ProjectSheetNames() ([]string, error)

	FindInvoice(invoiceID string) (*models.Invoice, error)
	SaveInvoice(invoice *models.Invoice) error

	FindPayment(paymentID string) (*models.Payment, error)
	SavePayment(payment *models.Payment) error

	FindWorkItemBySourceID(sourceItemID int) (*models.WorkItemMaster, error)
	FindWorkItemByName(category, itemName string) (*models.WorkItemMaster, error)
	SaveWorkItem(item *models.WorkItemMaster) error
}

// gormStore implements Store on top of a gorm transaction handle.
type gormStore struct {
	tx *gorm.DB
}

// NewStore wraps a gorm handle (normally a transaction) as a Store.
func NewStore(tx *gorm.DB) Store {
	return &gormStore{tx: tx}
}

func (s *gormStore) FindCustomer(customerID string) (*models.Customer, error) {
	var customer models.Customer
	err := s.tx.Where("customer_id = ?", customerID).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *gormStore) SaveCustomer(customer *models.Customer) error {
	return s.tx.Save(customer).Error
}

func (s *gormStore) FindProject(projectID string) (*models.Project, error) {
	var project models.Project
	err := s.tx.Where("project_id = ?", projectID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *gormStore) SaveProject(project *models.Project) error {
	return s.tx.Save(project).Error
}

func (s *gormStore) ProjectSheetNames() ([]string, error) {
	var names []string
	if err := s.tx.Model(&models.Project{}).Pluck("project_sheet_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (s *gormStore) FindInvoice(invoiceID string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.tx.Where("invoice_id = ?", invoiceID).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (s *gormStore) SaveInvoice(invoice *models.Invoice) error {
	return s.tx.Save(invoice).Error
}

func (s *gormStore) FindPayment(paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.tx.Where("payment_id = ?", paymentID).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *gormStore) SavePayment(payment *models.Payment) error {
	return s.tx.Save(payment).Error
}

func (s *gormStore) FindWorkItemBySourceID(sourceItemID int) (*models.WorkItemMaster, error) {
	var item models.WorkItemMaster
	err := s.tx.Where("source_item_id = ?", sourceItemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *gormStore) FindWorkItemByName(category, itemName string) (*models.WorkItemMaster, error) {
	var item models.WorkItemMaster
	err := s.tx.Where("category = ? AND item_name = ?", category, itemName).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *gormStore) SaveWorkItem(item *models.WorkItemMaster) error {
	return s.tx.Save(item).Error
}

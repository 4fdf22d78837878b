package services

import (
	"fmt"

	"github.com/driveline/driveline-core/internal/app/errors"
	"github.com/driveline/driveline-core/internal/app/models"
	"github.com/driveline/driveline-core/internal/infrastructures"
	"github.com/driveline/driveline-core/pkg/querybuilder"
	"github.com/driveline/driveline-core/pkg/rbac"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultCatalogPageSize = 12
	relatedCarLimit        = 4
)

// CarService serves the public catalog and the back-office catalog
// management operations.
type CarService struct {
	db        *gorm.DB
	audit     *AuditService
	validator *infrastructures.Validator
}

func NewCarService(db *gorm.DB, audit *AuditService, validator *infrastructures.Validator) *CarService {
	return &CarService{db: db, audit: audit, validator: validator}
}

const carSelect = "SELECT id, name, brand, price, model_year, description, image_ref, status FROM cars"
const carCount = "SELECT COUNT(*) FROM cars"

// catalogFilter applies the customer-facing predicates: deleted cars are
// always excluded, and each optional filter binds only when present.
func catalogFilter(base string, f models.CarSearchFilter) *querybuilder.Builder {
	return querybuilder.New(base).
		Where("status != ?", models.CarStatusDeleted).
		AnyContains(f.Search, "name", "brand", "description").
		EqualText("brand", f.Brand).
		AtLeast("price", f.MinPrice).
		AtMost("price", f.MaxPrice).
		Equal("model_year", f.Year)
}

// Search returns one page of the catalog matching the filter, newest
// listings first. Infrastructure failures degrade to an empty page.
func (s *CarService) Search(f models.CarSearchFilter) *models.Pagination[[]models.Car] {
	if f.PageSize <= 0 {
		f.PageSize = defaultCatalogPageSize
	}
	if f.Page < 1 {
		f.Page = 1
	}

	var total int64
	countSQL, countArgs := catalogFilter(carCount, f).Build()
	if err := s.db.Raw(countSQL, countArgs...).Scan(&total).Error; err != nil {
		logrus.WithError(err).Warn("catalog count degraded to zero")
		total = 0
	}

	listSQL, listArgs := catalogFilter(carSelect, f).
		OrderBy("id DESC").
		Page(f.Page, f.PageSize).
		Build()

	var cars []models.Car
	if err := s.db.Raw(listSQL, listArgs...).Scan(&cars).Error; err != nil {
		logrus.WithError(err).Warn("catalog search degraded to empty result")
		cars = []models.Car{}
	}
	if cars == nil {
		cars = []models.Car{}
	}

	totalPages := int((total + int64(f.PageSize) - 1) / int64(f.PageSize))
	return &models.Pagination[[]models.Car]{
		Page:       f.Page,
		PageSize:   f.PageSize,
		TotalPages: totalPages,
		TotalItems: int(total),
		HasNext:    f.Page < totalPages,
		HasPrev:    f.Page > 1,
		Items:      cars,
	}
}

// Get returns one catalog item by id.
func (s *CarService) Get(id int64) (*models.Car, error) {
	var car models.Car
	err := s.db.Where("id = ?", id).First(&car).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("Car not found")
		}
		return nil, errors.NewInternalServerError(err, "Failed to get car")
	}
	return &car, nil
}

// Detail returns the public detail view with up to 4 available cars of the
// same brand. Related lookups degrade to empty on failure.
func (s *CarService) Detail(id int64) (*models.CarDetail, error) {
	car, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	sql, args := querybuilder.New(carSelect).
		Where("status = ?", models.CarStatusAvailable).
		Where("id != ?", id).
		EqualText("brand", car.Brand).
		OrderBy("id DESC").
		Limit(relatedCarLimit).
		Build()

	var related []models.Car
	if err := s.db.Raw(sql, args...).Scan(&related).Error; err != nil {
		logrus.WithError(err).Warn("related cars degraded to empty result")
		related = []models.Car{}
	}
	if related == nil {
		related = []models.Car{}
	}

	return &models.CarDetail{Car: car, Related: related}, nil
}

// Brands returns the distinct brand list for filter choices, excluding
// deleted listings.
func (s *CarService) Brands() []string {
	var brands []string
	err := s.db.Model(&models.Car{}).
		Where("status != ? AND brand != ''", models.CarStatusDeleted).
		Distinct("brand").
		Order("brand").
		Pluck("brand", &brands).Error
	if err != nil {
		logrus.WithError(err).Warn("brand list degraded to empty result")
		return []string{}
	}
	return emptyIfNil(brands)
}

// Create inserts a catalog item and records the admin action.
func (s *CarService) Create(p *rbac.Principal, sourceIP string, req *models.CarCreateRequest) (*models.Car, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.CarStatusAvailable
	}
	car := &models.Car{
		Name:        req.Name,
		Brand:       req.Brand,
		Price:       req.Price,
		ModelYear:   req.ModelYear,
		Description: req.Description,
		ImageRef:    req.ImageRef,
		Status:      status,
	}

	if err := s.db.Create(car).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create car")
	}

	s.recordAdmin(p, sourceIP, fmt.Sprintf("CREATE_PRODUCT: %s", car.Name))
	return car, nil
}

// Update replaces the mutable fields of a catalog item.
func (s *CarService) Update(p *rbac.Principal, sourceIP string, id int64, req *models.CarUpdateRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	result := s.db.Model(&models.Car{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        req.Name,
		"brand":       req.Brand,
		"price":       req.Price,
		"model_year":  req.ModelYear,
		"description": req.Description,
		"image_ref":   req.ImageRef,
		"status":      req.Status,
	})
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to update car")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Car not found")
	}

	s.recordAdmin(p, sourceIP, fmt.Sprintf("UPDATE_PRODUCT: #%d - %s", id, req.Name))
	return nil
}

// UpdateStatus sets only the listing status.
func (s *CarService) UpdateStatus(p *rbac.Principal, sourceIP string, id int64, req *models.CarStatusRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	result := s.db.Model(&models.Car{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to update car status")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Car not found")
	}

	s.recordAdmin(p, sourceIP, fmt.Sprintf("UPDATE_STATUS: Product #%d to %s", id, req.Status))
	return nil
}

// Delete soft-deletes a listing. The row is kept for referential integrity
// with historical orders.
func (s *CarService) Delete(p *rbac.Principal, sourceIP string, id int64) error {
	result := s.db.Model(&models.Car{}).Where("id = ?", id).Update("status", models.CarStatusDeleted)
	if result.Error != nil {
		return errors.NewInternalServerError(result.Error, "Failed to delete car")
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Car not found")
	}

	s.recordAdmin(p, sourceIP, fmt.Sprintf("DELETE_PRODUCT: #%d", id))
	return nil
}

func (s *CarService) recordAdmin(p *rbac.Principal, sourceIP, action string) {
	var accountID *int64
	if !p.IsAnonymous() {
		id := p.AccountID
		accountID = &id
	}
	s.audit.Record(accountID, action, models.AuditTargetAdminAction, sourceIP)
}

package patients

import (
	"strings"
	"sync"

	"gorm.io/gorm"

	"smart-emr-server/internal/models"
)

// Repository is the persistence boundary for patient progress records. The
// engine has no hidden global store; callers inject an implementation.
type Repository interface {
	LoadAll() ([]models.Patient, error)
	FindByID(id string) (*models.Patient, error)
	Upsert(p *models.Patient) error
	Search(query string) ([]models.Patient, error)
	Delete(id string) error
}

// GormRepository stores patients in the application database, one row per
// patient with the visit history as a JSON document column.
type GormRepository struct {
	DB *gorm.DB
}

// NewGormRepository creates a new GormRepository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) LoadAll() ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.DB.Order("created_at asc").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *GormRepository) FindByID(id string) (*models.Patient, error) {
	var patient models.Patient
	if err := r.DB.First(&patient, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *GormRepository) Upsert(p *models.Patient) error {
	return r.DB.Save(p).Error
}

// Search matches name, id or contact, case-insensitively. Queries shorter
// than two characters return nothing.
func (r *GormRepository) Search(query string) ([]models.Patient, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, nil
	}
	q := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var patients []models.Patient
	err := r.DB.
		Where("LOWER(name) LIKE ? OR LOWER(id) LIKE ? OR LOWER(contact) LIKE ?", q, q, q).
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *GormRepository) Delete(id string) error {
	return r.DB.Delete(&models.Patient{}, "id = ?", id).Error
}

// MemoryRepository is an in-memory Repository used by tests and demo setups.
type MemoryRepository struct {
	mu       sync.RWMutex
	patients map[string]models.Patient
	order    []string
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{patients: make(map[string]models.Patient)}
}

func (r *MemoryRepository) LoadAll() ([]models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Patient, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.patients[id])
	}
	return out, nil
}

func (r *MemoryRepository) FindByID(id string) (*models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryRepository) Upsert(p *models.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.patients[p.ID] = *p
	return nil
}

func (r *MemoryRepository) Search(query string) ([]models.Patient, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, nil
	}
	q := strings.ToLower(strings.TrimSpace(query))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Patient
	for _, id := range r.order {
		p := r.patients[id]
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.ID), q) ||
			strings.Contains(strings.ToLower(p.Contact), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.patients[id]; !ok {
		return nil
	}
	delete(r.patients, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

package repo

import (
	"BioAttend/internal/model"
	"context"

	"gorm.io/gorm"
)

// StudentRepository — контракт доступа к студентам для слоя сервиса.
type StudentRepository interface {
	Create(ctx context.Context, s *model.Student) (*model.Student, error)

	// GetByID возвращает gorm.ErrRecordNotFound, если студента нет.
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByMatric(ctx context.Context, matric string) (*model.Student, error)

	// UpdateFingerprint перезаписывает зашифрованный блоб шаблона студента.
	UpdateFingerprint(ctx context.Context, id string, blob string) error

	List(ctx context.Context) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepository создаёт реализацию репозитория для Student.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, s *model.Student) (*model.Student, error) {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) GetByMatric(ctx context.Context, matric string) (*model.Student, error) {
	var s model.Student
	if err := r.db.WithContext(ctx).First(&s, "matric = ?", matric).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepo) UpdateFingerprint(ctx context.Context, id string, blob string) error {
	tx := r.db.WithContext(ctx).Model(&model.Student{}).Where("id = ?", id).Update("fingerprint", blob)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	var out []model.Student
	if err := r.db.WithContext(ctx).Order("full_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

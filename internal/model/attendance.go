package model

import "time"

// Attendance — запись о присутствии. Создаётся только после успешной
// верификации отпечатка и дальше не изменяется.
type Attendance struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	StudentID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_attendance_once"`

	// Связи
	Student *Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CourseCode string  `gorm:"not null;index;uniqueIndex:idx_attendance_once"`
	Day        string  `gorm:"not null;uniqueIndex:idx_attendance_once"` // YYYY-MM-DD, день занятия
	Status     string  `gorm:"not null"` // сейчас всегда "present"
	Confidence float64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

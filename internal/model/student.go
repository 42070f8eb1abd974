package model

import "time"

// Student — серверная модель студента. Fingerprint хранит зашифрованный блоб
// шаблона ("iv:authTag:ciphertext" в hex) и пуст до первой регистрации отпечатка.
type Student struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	FullName string `gorm:"not null"`
	Matric   string `gorm:"uniqueIndex;not null"` // номер зачётки

	Fingerprint string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

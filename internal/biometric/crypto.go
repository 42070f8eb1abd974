package biometric

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Параметры шифрования шаблонов: AES-256-GCM с явным 16-байтовым IV.
const (
	keyLen = 32
	ivLen  = 16
)

// Типизированные ошибки криптослоя. Для вызывающего кода они фатальны:
// повреждённый блоб или неверный ключ — повод прервать операцию, а не продолжать.
var (
	ErrEncryption = errors.New("biometric: encryption failed")
	ErrDecryption = errors.New("biometric: decryption failed")
)

// Encrypt шифрует сериализованный шаблон ключом key (ровно 32 байта) и возвращает
// блоб вида "iv:authTag:ciphertext", все сегменты в hex. IV генерируется заново
// при каждом вызове.
func Encrypt(plaintext string, key []byte) (string, error) {
	if len(key) != keyLen {
		return "", fmt.Errorf("%w: key must be %d bytes, got %d", ErrEncryption, keyLen, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	sealed := gcm.Seal(nil, iv, []byte(plaintext), nil)
	// Seal дописывает тег аутентификации в конец; для формата блоба отделяем его
	tagAt := len(sealed) - gcm.Overhead()
	ciphertext, tag := sealed[:tagAt], sealed[tagAt:]
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decrypt разбирает блоб "iv:authTag:ciphertext", расшифровывает его и проверяет
// тег аутентификации. Любая порча данных (лишние сегменты, не-hex, подменённый тег,
// чужой ключ) возвращается как ошибка, оборачивающая ErrDecryption.
func Decrypt(blob string, key []byte) (string, error) {
	if len(key) != keyLen {
		return "", fmt.Errorf("%w: key must be %d bytes, got %d", ErrDecryption, keyLen, len(key))
	}
	parts := strings.Split(blob, ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: invalid format", ErrDecryption)
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: bad iv hex: %v", ErrDecryption, err)
	}
	if len(iv) != ivLen {
		return "", fmt.Errorf("%w: iv must be %d bytes, got %d", ErrDecryption, ivLen, len(iv))
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: bad auth tag hex: %v", ErrDecryption, err)
	}
	ciphertext, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext hex: %v", ErrDecryption, err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, ivLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	// Open ожидает ciphertext||tag одним буфером
	plain, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryption, err)
	}
	return string(plain), nil
}

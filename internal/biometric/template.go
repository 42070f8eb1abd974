package biometric

import "encoding/json"

// Template — расшифрованный документ шаблона отпечатка.
// Поле Template хранит полезную нагрузку в произвольной кодировке (hex, base64 —
// матчеру всё равно), Format — тег формата захвата, например "ANSI-378".
type Template struct {
	Template string            `json:"template"`
	Format   string            `json:"format,omitempty"`
	Metadata *TemplateMetadata `json:"metadata,omitempty"`
}

// TemplateMetadata — необязательные сведения о захвате. AllTemplates заполняется
// при многократной регистрации: несколько сканов одного пальца, новые в конце.
type TemplateMetadata struct {
	Quality      float64  `json:"quality,omitempty"`
	CapturedAt   string   `json:"capturedAt,omitempty"`
	AllTemplates []string `json:"allTemplates,omitempty"`
}

// MatchResult — результат одной верификации. Создаётся заново на каждый вызов
// и нигде не сохраняется.
type MatchResult struct {
	Matched    bool    `json:"matched"`
	Confidence float64 `json:"confidence"`
}

// ParseTemplate разбирает JSON-документ шаблона.
func ParseTemplate(raw string) (*Template, error) {
	var t Template
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

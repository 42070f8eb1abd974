package biometric

import "math"

// Константы эвристики сравнения. От них напрямую зависит принятие/отклонение
// отпечатка, менять без перекалибровки порога нельзя.
const (
	lengthGate = 0.05 // допустимая относительная разница длин

	ngramSize      = 4
	blockSize      = 20
	blockThreshold = 0.7

	charWeight  = 0.40
	ngramWeight = 0.35
	blockWeight = 0.25
)

// Matcher сверяет свежезахваченный шаблон с сохранённым зашифрованным.
// Ключ задаётся при создании (процессная конфигурация) и не меняется во время
// работы; сам матчер не держит никакого другого состояния и безопасен для
// конкурентных вызовов.
type Matcher struct {
	key []byte
}

// NewMatcher создаёт матчер с ключом расшифровки хранимых шаблонов.
func NewMatcher(key []byte) *Matcher {
	return &Matcher{key: key}
}

// Verify выполняет полный цикл проверки: расшифровка хранимого блоба, разбор
// обоих документов, выбор кандидатов (metadata.allTemplates, иначе одиночный
// template), максимум сходства по кандидатам. Любой сбой на входных данных
// не фатален — результат просто {Matched: false, Confidence: 0}; наружу не
// выходит ни ошибка, ни паника. Порог threshold задаётся в процентах (0–100).
func (m *Matcher) Verify(inputJSON, storedBlob string, threshold float64) MatchResult {
	res, _ := m.VerifyDetailed(inputJSON, storedBlob, threshold)
	return res
}

// VerifyDetailed — то же, что Verify, плюс индекс кандидата, давшего максимум
// сходства (для диагностики в логах; -1, если до сравнения не дошло).
func (m *Matcher) VerifyDetailed(inputJSON, storedBlob string, threshold float64) (MatchResult, int) {
	var noMatch MatchResult

	storedJSON, err := Decrypt(storedBlob, m.key)
	if err != nil {
		return noMatch, -1
	}
	input, err := ParseTemplate(inputJSON)
	if err != nil {
		return noMatch, -1
	}
	stored, err := ParseTemplate(storedJSON)
	if err != nil {
		return noMatch, -1
	}
	if input.Template == "" || stored.Template == "" {
		return noMatch, -1
	}

	candidates := []string{stored.Template}
	if stored.Metadata != nil && len(stored.Metadata.AllTemplates) > 0 {
		candidates = stored.Metadata.AllTemplates
	}

	best, bestIdx := 0.0, 0
	for i, c := range candidates {
		if s := Similarity(input.Template, c); s > best {
			best, bestIdx = s, i
		}
	}

	return MatchResult{
		Matched:    best >= threshold,
		Confidence: math.Round(best*100) / 100,
	}, bestIdx
}

// Similarity возвращает оценку сходства двух строк шаблонов в процентах [0, 100].
// Чисто текстовая эвристика: позиционное совпадение символов, жаккардово сходство
// множеств 4-грамм и поблочное сравнение, взвешенная сумма с бонусом за высокий
// символьный балл. Детерминирована и симметрична.
func Similarity(a, b string) float64 {
	lenA, lenB := len(a), len(b)
	maxLen := lenA
	if lenB > maxLen {
		maxLen = lenB
	}
	if maxLen == 0 {
		return 0
	}
	diff := lenA - lenB
	if diff < 0 {
		diff = -diff
	}
	// разные длины — структурно несовместимые шаблоны
	if float64(diff)/float64(maxLen) > lengthGate {
		return 0
	}

	minLen := lenA
	if lenB < minLen {
		minLen = lenB
	}
	a, b = a[:minLen], b[:minLen]

	char := charScore(a, b)
	combined := charWeight*char + ngramWeight*ngramScore(a, b) + blockWeight*blockScore(a, b)

	final := combined * charBonus(char) * 100
	if final > 100 {
		final = 100
	}
	return final
}

// charScore — доля позиций с совпадающими символами; строки равной длины.
func charScore(a, b string) float64 {
	if len(a) == 0 {
		return 0
	}
	matched := 0
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			matched++
		}
	}
	return float64(matched) / float64(len(a))
}

// ngramScore — жаккардово сходство множеств подстрок длины ngramSize.
func ngramScore(a, b string) float64 {
	na, nb := ngrams(a), ngrams(b)
	if len(na) == 0 && len(nb) == 0 {
		return 0
	}
	inter := 0
	for g := range na {
		if _, ok := nb[g]; ok {
			inter++
		}
	}
	union := len(na) + len(nb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func ngrams(s string) map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for i := 0; i+ngramSize <= len(s); i++ {
		set[s[i:i+ngramSize]] = struct{}{}
	}
	return set
}

// blockScore — доля неперекрывающихся блоков по blockSize символов, в которых
// совпало больше blockThreshold позиций. Хвост короче блока не учитывается.
func blockScore(a, b string) float64 {
	total := len(a) / blockSize
	if total == 0 {
		return 0
	}
	matched := 0
	for i := 0; i < total; i++ {
		lo, hi := i*blockSize, (i+1)*blockSize
		if charScore(a[lo:hi], b[lo:hi]) > blockThreshold {
			matched++
		}
	}
	return float64(matched) / float64(total)
}

func charBonus(char float64) float64 {
	switch {
	case char >= 0.90:
		return 1.15
	case char >= 0.85:
		return 1.10
	case char >= 0.80:
		return 1.05
	default:
		return 1.0
	}
}

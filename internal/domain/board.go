package domain

// Symbol обозначает сторону игрока на доске.
type Symbol string

const (
	SymbolX    Symbol = "X"
	SymbolO    Symbol = "O"
	SymbolNone Symbol = ""
)

// Opponent возвращает противоположную сторону.
func (s Symbol) Opponent() Symbol {
	if s == SymbolX {
		return SymbolO
	}
	return SymbolX
}

// Board — поле 3x3 в row-major порядке, индексы 0-8.
type Board [9]Symbol

// Full сообщает, остались ли на доске пустые клетки.
func (b Board) Full() bool {
	for _, c := range b {
		if c == SymbolNone {
			return false
		}
	}
	return true
}

// Free сообщает, пуста ли клетка index (false для индексов вне доски).
func (b Board) Free(index int) bool {
	return index >= 0 && index < len(b) && b[index] == SymbolNone
}

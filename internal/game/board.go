package game

import "github.com/cwrk-planet/tictactoe-service/internal/domain"

// winLines — фиксированный перечень выигрышных линий: 3 ряда, 3 колонки,
// 2 диагонали. Порядок важен: Evaluate сообщает первую совпавшую линию.
var winLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome — результат оценки доски.
type Outcome struct {
	Winner domain.Symbol `json:"winner,omitempty"`
	Line   []int         `json:"line,omitempty"`
	Draw   bool          `json:"draw,omitempty"`
}

// Over сообщает, закончилась ли партия.
func (o Outcome) Over() bool {
	return o.Draw || o.Winner != domain.SymbolNone
}

// Evaluate сканирует все восемь линий в фиксированном порядке и возвращает
// победителя с его линией, ничью при полной доске либо пустой Outcome для
// продолжающейся партии.
func Evaluate(b domain.Board) Outcome {
	for _, line := range winLines {
		a, m, c := line[0], line[1], line[2]
		if b[a] != domain.SymbolNone && b[a] == b[m] && b[m] == b[c] {
			return Outcome{Winner: b[a], Line: []int{a, m, c}}
		}
	}
	if b.Full() {
		return Outcome{Draw: true}
	}
	return Outcome{}
}

// ApplyMove ставит symbol в клетку index, если клетка свободна и сейчас
// ход этой стороны. Нелегальный ход не меняет доску и возвращает false.
func ApplyMove(b *domain.Board, index int, symbol, current domain.Symbol) bool {
	if symbol != current {
		return false
	}
	if !b.Free(index) {
		return false
	}
	b[index] = symbol
	return true
}

package game

import (
	"math/rand"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
)

var (
	corners = []int{0, 2, 6, 8}
	sides   = []int{1, 3, 5, 7}
)

const center = 4

// SuggestMove выбирает клетку для symbol эвристикой одиночного режима:
// свой выигрывающий ход → блок выигрыша соперника → центр → случайный
// свободный угол → случайная свободная сторона → любая свободная клетка.
// Возвращает -1, если ходов нет.
func SuggestMove(b domain.Board, symbol domain.Symbol) int {
	if m := winningMove(b, symbol); m != -1 {
		return m
	}
	if m := winningMove(b, symbol.Opponent()); m != -1 {
		return m
	}
	if b.Free(center) {
		return center
	}
	if m := randomFree(b, corners); m != -1 {
		return m
	}
	if m := randomFree(b, sides); m != -1 {
		return m
	}
	all := make([]int, len(b))
	for i := range b {
		all[i] = i
	}
	return randomFree(b, all)
}

// winningMove ищет клетку, завершающую линию symbol, перебором пустых
// клеток с пробной постановкой.
func winningMove(b domain.Board, symbol domain.Symbol) int {
	for i := range b {
		if b[i] != domain.SymbolNone {
			continue
		}
		b[i] = symbol
		if out := Evaluate(b); out.Winner == symbol {
			return i
		}
		b[i] = domain.SymbolNone
	}
	return -1
}

func randomFree(b domain.Board, candidates []int) int {
	free := make([]int, 0, len(candidates))
	for _, i := range candidates {
		if b.Free(i) {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		return -1
	}
	return free[rand.Intn(len(free))]
}

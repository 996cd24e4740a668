package matchmaking

import (
	"log/slog"
	"time"
)

// Entry — заявка на случайный матч.
type Entry struct {
	ConnID     string
	PlayerName string
	JoinedAt   time.Time
}

// Queue — FIFO-очередь подбора соперника. Не потокобезопасна: все вызовы
// идут из диспетчера шлюза, подбор пары атомарен в рамках одного события.
type Queue struct {
	entries []Entry
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue добавляет заявку; повторная заявка того же соединения —
// идемпотентный no-op.
func (q *Queue) Enqueue(connID, playerName string) bool {
	for _, e := range q.entries {
		if e.ConnID == connID {
			slog.Info("player already in matchmaking queue", "player", playerName)
			return false
		}
	}
	q.entries = append(q.entries, Entry{
		ConnID:     connID,
		PlayerName: playerName,
		JoinedAt:   time.Now(),
	})
	slog.Info("player queued for random match", "player", playerName, "queue_len", len(q.entries))
	return true
}

// TakePair снимает две самые старые заявки, когда их не меньше двух.
func (q *Queue) TakePair() (Entry, Entry, bool) {
	if len(q.entries) < 2 {
		return Entry{}, Entry{}, false
	}
	a, b := q.entries[0], q.entries[1]
	q.entries = q.entries[2:]
	return a, b, true
}

// Remove убирает заявку соединения, если она есть.
func (q *Queue) Remove(connID string) bool {
	for i, e := range q.entries {
		if e.ConnID == connID {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			slog.Info("player left matchmaking queue", "player", e.PlayerName)
			return true
		}
	}
	return false
}

func (q *Queue) Len() int {
	return len(q.entries)
}

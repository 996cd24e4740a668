package service

import (
	"errors"
	"strings"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
)

const maxMessageLen = 4000

type ChatService struct {
	reg   *registry.Registry
	limit int // максимум сообщений в истории, FIFO-вытеснение
}

func NewChatService(reg *registry.Registry, limit int) *ChatService {
	if limit <= 0 {
		limit = 50
	}
	return &ChatService{reg: reg, limit: limit}
}

// AppendGame добавляет сообщение в игровой чат комнаты.
func (s *ChatService) AppendGame(roomID, sender, text string, symbol domain.Symbol) (domain.ChatMessage, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	msg, err := newMessage(sender, text, symbol)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	room.Messages = appendBounded(room.Messages, msg, s.limit)
	return msg, nil
}

// AppendWaitingRoom добавляет сообщение в чат комнаты ожидания.
func (s *ChatService) AppendWaitingRoom(roomID, sender, text string, symbol domain.Symbol) (domain.ChatMessage, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	msg, err := newMessage(sender, text, symbol)
	if err != nil {
		return domain.ChatMessage{}, err
	}
	room.WaitingRoomMessages = appendBounded(room.WaitingRoomMessages, msg, s.limit)
	return msg, nil
}

func newMessage(sender, text string, symbol domain.Symbol) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, errors.New("empty message")
	}
	if len(text) > maxMessageLen {
		return domain.ChatMessage{}, errors.New("message too long")
	}
	return domain.ChatMessage{
		Sender:    sender,
		Message:   text,
		Symbol:    symbol,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

func appendBounded(history []domain.ChatMessage, msg domain.ChatMessage, limit int) []domain.ChatMessage {
	history = append(history, msg)
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

package server

import (
	"encoding/json"
	"time"

	"github.com/lox/stonefight/internal/card"
	"github.com/lox/stonefight/internal/combat"
	"github.com/lox/stonefight/internal/game"
	"github.com/lox/stonefight/internal/stone"
)

// MessageType names a websocket message.
type MessageType string

// Client → Server message types
const (
	MessageTypeStartFight MessageType = "start_fight"
	MessageTypeNewRound   MessageType = "new_round"
	MessageTypeSelectCard MessageType = "select_card"
	MessageTypePlayCard   MessageType = "play_card"
	MessageTypeResolve    MessageType = "resolve"
	MessageTypeConcede    MessageType = "concede"
	MessageTypeEndFight   MessageType = "end_fight"
	MessageTypeState      MessageType = "state"
)

// Server → Client message types
const (
	MessageTypeError MessageType = "error"
	MessageTypeEvent MessageType = "event"
)

// ResultType is the reply type for a request type.
func ResultType(t MessageType) MessageType {
	return t + "_result"
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with at
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: at,
	}, nil
}

// Client → Server Messages

type SelectCardData struct {
	CardID string `json:"cardId"`
}

type PlayCardData struct {
	CardID string `json:"cardId"`
	Target string `json:"target,omitempty"` // player/self or opponent/foe; card default if empty
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EventData struct {
	EventType string `json:"eventType"`
	Event     any    `json:"event"`
}

type FightState struct {
	SessionID string             `json:"sessionId"`
	Round     int                `json:"round"`
	Phase     string             `json:"phase"`
	Winner    string             `json:"winner,omitempty"`
	Player    combat.Participant `json:"player"`
	Opponent  combat.Participant `json:"opponent"`
	Choices   []card.Card        `json:"choices"`
	Log       []string           `json:"log"`
}

type GameState struct {
	Currency int               `json:"currency"`
	Stones   []stone.Qualities `json:"stones"`
	Equipped *stone.Qualities  `json:"equipped,omitempty"`
	Opponent *stone.Qualities  `json:"opponent,omitempty"`
	Hand     []card.Card       `json:"hand"`
	Fight    *FightState       `json:"fight,omitempty"`
}

func fightStateFrom(s *combat.Session) *FightState {
	return &FightState{
		SessionID: s.ID(),
		Round:     s.Round(),
		Phase:     s.Phase().String(),
		Winner:    string(s.Winner()),
		Player:    s.Player(),
		Opponent:  s.Opponent(),
		Choices:   s.Choices(),
		Log:       s.Log(),
	}
}

func gameStateFrom(g *game.Game) GameState {
	st := GameState{
		Currency: g.Currency(),
		Stones:   g.Stones(),
		Hand:     g.Hand(),
	}
	if q, ok := g.EquippedStone(); ok {
		st.Equipped = &q
	}
	if q, err := g.CurrentOpponent(); err == nil {
		st.Opponent = &q
	}
	if s, err := g.Fight(); err == nil {
		st.Fight = fightStateFrom(s)
	}
	return st
}

func (t MessageType) known() bool {
	switch t {
	case MessageTypeStartFight, MessageTypeNewRound, MessageTypeSelectCard,
		MessageTypePlayCard, MessageTypeResolve, MessageTypeConcede,
		MessageTypeEndFight, MessageTypeState:
		return true
	}
	return false
}

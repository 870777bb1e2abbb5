package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSessionStarted = "session.started"
	EventTypeSessionEnded   = "session.ended"
	EventTypeMonthChanged   = "month.changed"
	EventTypeDataSynced     = "data.synced"
)

// Reasons a session ends.
const (
	EndReasonLogout       = "logout"
	EndReasonUnauthorized = "unauthorized"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

type SessionStartedEvent struct {
	BaseEvent
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewSessionStartedEvent(userID int64, username, role string) *SessionStartedEvent {
	return &SessionStartedEvent{
		BaseEvent: newBase(EventTypeSessionStarted, map[string]interface{}{
			"user_id":  userID,
			"username": username,
			"role":     role,
		}),
		UserID:   userID,
		Username: username,
		Role:     role,
	}
}

type SessionEndedEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}

func NewSessionEndedEvent(reason string) *SessionEndedEvent {
	return &SessionEndedEvent{
		BaseEvent: newBase(EventTypeSessionEnded, map[string]interface{}{"reason": reason}),
		Reason:    reason,
	}
}

type MonthChangedEvent struct {
	BaseEvent
	MonthKey string `json:"month_key"`
}

func NewMonthChangedEvent(monthKey string) *MonthChangedEvent {
	return &MonthChangedEvent{
		BaseEvent: newBase(EventTypeMonthChanged, map[string]interface{}{"month_key": monthKey}),
		MonthKey:  monthKey,
	}
}

type DataSyncedEvent struct {
	BaseEvent
	MonthKey string `json:"month_key"`
	Count    int    `json:"count"`
}

func NewDataSyncedEvent(monthKey string, count int) *DataSyncedEvent {
	return &DataSyncedEvent{
		BaseEvent: newBase(EventTypeDataSynced, map[string]interface{}{
			"month_key": monthKey,
			"count":     count,
		}),
		MonthKey: monthKey,
		Count:    count,
	}
}

// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package events carries user activity over an in-process Watermill bus.
//
// Handlers emit an Activity after a successful write (recipe created,
// favorite removed, and so on). A supervised router consumes the
// foodgram.activity topic, logs each activity and counts it by type.
// Emitting never fails the caller: publish errors are logged and counted.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topic is the Watermill topic activities are published to.
const Topic = "foodgram.activity"

// Type names an activity.
type Type string

// Activity types.
const (
	RecipeCreated       Type = "recipe.created"
	RecipeUpdated       Type = "recipe.updated"
	RecipeDeleted       Type = "recipe.deleted"
	FavoriteAdded       Type = "favorite.added"
	FavoriteRemoved     Type = "favorite.removed"
	CartAdded           Type = "cart.added"
	CartRemoved         Type = "cart.removed"
	SubscriptionCreated Type = "subscription.created"
	SubscriptionDeleted Type = "subscription.deleted"
	UserRegistered      Type = "user.registered"
)

// Activity is one user action. TargetID is the recipe, author or user the
// action applies to.
type Activity struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	UserID     int64     `json:"user_id"`
	TargetID   int64     `json:"target_id"`
	OccurredAt time.Time `json:"occurred_at"`
	RequestID  string    `json:"request_id,omitempty"`
}

// NewActivity stamps a new activity with an id and the current time.
func NewActivity(t Type, userID, targetID int64) *Activity {
	return &Activity{
		ID:         uuid.NewString(),
		Type:       t,
		UserID:     userID,
		TargetID:   targetID,
		OccurredAt: time.Now().UTC(),
	}
}

func (a *Activity) marshal() ([]byte, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal activity: %w", err)
	}
	return data, nil
}

func unmarshalActivity(data []byte) (*Activity, error) {
	var a Activity
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("unmarshal activity: %w", err)
	}
	if a.Type == "" {
		return nil, fmt.Errorf("activity %s has no type", a.ID)
	}
	return &a, nil
}

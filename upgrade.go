package esfeed

import (
	"context"
	"iter"
)

// EventUpgrade events into a new version.
// The events all come from the same stream, ordered by their position.
//
// Upgrades run on every event a Client delivers, from Read, Project and Subscribe.
// An upgrade may rewrite, drop or split events. An error stops the read or subscription.
type EventUpgrade interface {
	Upgrade(ctx context.Context, events iter.Seq2[Event, error]) iter.Seq2[Event, error]
}

type EventUpgradeFunc func(ctx context.Context, i iter.Seq2[Event, error]) iter.Seq2[Event, error]

func (fn EventUpgradeFunc) Upgrade(ctx context.Context, i iter.Seq2[Event, error]) iter.Seq2[Event, error] {
	return fn(ctx, i)
}

type upgrades []EventUpgrade

// apply chains the upgrades in the order they were given.
func (u upgrades) apply(ctx context.Context, events iter.Seq2[Event, error]) iter.Seq2[Event, error] {
	for _, upgrade := range u {
		events = upgrade.Upgrade(ctx, events)
	}

	return events
}

// each upgrades a single event and passes the results to fn.
func (u upgrades) each(ctx context.Context, event Event, fn func(Event) error) error {
	if len(u) == 0 {
		return fn(event)
	}

	single := func(yield func(Event, error) bool) {
		yield(event, nil)
	}

	for upgraded, err := range u.apply(ctx, single) {
		if err != nil {
			return err
		}

		if err := fn(upgraded); err != nil {
			return err
		}
	}

	return nil
}

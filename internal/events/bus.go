package events

import "leadops_backend/platform/events"

// Re-export the in-process bus implementation for module wiring.
type InMemoryBus = events.InMemoryBus

var NewInMemoryBus = events.NewInMemoryBus

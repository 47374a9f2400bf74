// Package ecs provides ECS adapters for reveal.
//
// The primary adapter is [NewDonburiSink], which forwards reveal lifecycle
// events (reveal, reset, complete) into a [Donburi] world as typed events.
// Subscribe to [RevealEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	engine := reveal.Init(doc, reveal.DefaultConfig(), reveal.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

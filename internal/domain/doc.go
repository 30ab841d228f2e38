// Package domain models the PhotoScout core: saved shooting locations, the
// weather forecasts attached to them, photography tips, and user settings.
//
// # Entities and domain events
//
// Entities embed [Entity], which carries an integer identity and a buffer of
// pending domain events. Identity is 0 until a persistence adapter assigns it
// after insert. State changes append events ([LocationSaved], [PhotoAttached],
// [LocationDeleted], [WeatherUpdated]) to the buffer in order; a consumer
// drains the buffer and calls ClearDomainEvents once the events have been
// handled. Nothing in this package dispatches events itself.
//
// Entities are not synchronized. They are built for exclusive sequential
// access per instance; callers that share an entity across goroutines must
// lock around it.
//
// # Validation policy
//
// Two failure policies coexist on purpose:
//
//	Strict:  identity-like fields (location title, setting key, tip title,
//	         tip type name, photo path) and humidity/cloud-cover percentages
//	         fail construction or mutation with a sentinel error.
//	Lenient: physical measurements that arrive noisy from providers are
//	         corrected, not rejected — moon phase is clamped to [0, 1],
//	         precipitation to >= 0 — and Setting's typed getters return a
//	         default instead of failing on malformed content.
//
// # Moon phase
//
// Phase is the illuminated fraction cycle position in [0, 1], 0 and 1 both
// meaning a new moon. MoonPhaseDescription buckets it:
//
//	[0.00, 0.03) and [0.97, 1.00]  New Moon
//	[0.03, 0.22)                   Waxing Crescent
//	[0.22, 0.28)                   First Quarter
//	[0.28, 0.47)                   Waxing Gibbous
//	[0.47, 0.53)                   Full Moon
//	[0.53, 0.72)                   Waning Gibbous
//	[0.72, 0.78)                   Last Quarter
//	[0.78, 0.97)                   Waning Crescent
//
// # Time
//
// Entity timestamps come from a package-level clock so tests can freeze time
// via [SetClock]. All timestamps are UTC.
package domain

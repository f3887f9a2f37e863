// File: utils/constants.go
package utils

import "time"

// CatalogCachePrefix is the prefix used for Redis catalog cache keys.
const CatalogCachePrefix = "catalog:"

// StoreRecordPrefix is the prefix under which the dashboard writes store
// configuration records.
const StoreRecordPrefix = "store:"

// SlotLockPrefix is the prefix for booking serialization locks.
const SlotLockPrefix = "slotlock:"

// SlotLockTTL bounds how long a booking lock can be held; a crashed request
// must not keep a slot locked.
const SlotLockTTL = 15 * time.Second

// DebugEventList is the Redis list the debug panel collaborator drains.
const DebugEventList = "chat:debug-events"

// DebugEventListMax caps the debug event backlog.
const DebugEventListMax = 1000

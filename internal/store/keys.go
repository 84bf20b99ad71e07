package store

// Durable settings keys. The namespace keeps them apart from anything else
// sharing the settings table or bucket.
const (
	KeyAppLockEnabled = "mylife_app_lock_enabled"
	KeyAppPINHash     = "mylife_app_pin_hash"
)

// Session-scoped keys, kept in [MemorySessionStore] only.
const (
	KeyTerminalUnlocked = "mylife_terminal_unlocked"
	KeySessionUnlocked  = "mylife_session_unlocked"
)

const (
	valueTrue  = "true"
	valueFalse = "false"
)

package memalloc

import "github.com/xyproto/env/v2"

// Environment-variable tunables for the process-wide default heap. There
// is deliberately no config file — spec.md §6.2 rules one out — these are
// the ambient-configuration surface the xyproto-vibe67 side of the
// retrieval pack demonstrates (its go.mod depends directly on
// github.com/xyproto/env/v2).
const (
	envArenaReserveMB = "MEMALLOC_ARENA_RESERVE_MB"
	envAudit          = "MEMALLOC_AUDIT"

	defaultArenaReserveMB = 256
)

// arenaReserveBytes returns the configured size of the virtual address
// reservation backing the contiguous arena (see internal/osmem.UnixBackend),
// defaulting to defaultArenaReserveMB MiB.
func arenaReserveBytes() int {
	return env.Int(envArenaReserveMB, defaultArenaReserveMB) * 1024 * 1024
}

// auditEnabled reports whether the process-wide default heap should
// self-validate after every operation. Unset/invalid defaults to false,
// which is also env.Bool's zero behavior.
func auditEnabled() bool {
	return env.Bool(envAudit)
}

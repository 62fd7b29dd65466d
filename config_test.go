package memalloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaReserveBytesDefault(t *testing.T) {
	t.Setenv(envArenaReserveMB, "")
	assert.Equal(t, defaultArenaReserveMB*1024*1024, arenaReserveBytes())
}

func TestArenaReserveBytesFromEnv(t *testing.T) {
	t.Setenv(envArenaReserveMB, "64")
	assert.Equal(t, 64*1024*1024, arenaReserveBytes())
}

func TestAuditEnabledDefaultFalse(t *testing.T) {
	t.Setenv(envAudit, "")
	assert.False(t, auditEnabled())
}

func TestAuditEnabledFromEnv(t *testing.T) {
	t.Setenv(envAudit, "1")
	assert.True(t, auditEnabled())
}

package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID produces a unique identifier for expenses and line items: a base36
// millisecond timestamp prefix followed by a random suffix. There is no
// collision detection; the probability of a collision is treated as
// negligible, not zero.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ts + suffix[:12]
}

package journal

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var timeNow = time.Now // injected for testability

// NewID returns a new entity id: the base-36 millisecond timestamp, a dash
// and eight random hex digits.
func NewID() string {
	ts := strconv.FormatInt(timeNow().UnixMilli(), 36)
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ts + "-" + random[:8]
}

package order

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const numberPrefix = "ORD"

// NewOrderNumber builds the public order identifier: prefix, order date, and
// a random six-character uppercase hex suffix. Date plus randomness makes
// collisions practically impossible; numbers are never reused.
func NewOrderNumber(now time.Time) string {
	u := uuid.New()
	suffix := strings.ToUpper(hex.EncodeToString(u[:3]))
	return fmt.Sprintf("%s-%s-%s", numberPrefix, now.Format("20060102"), suffix)
}

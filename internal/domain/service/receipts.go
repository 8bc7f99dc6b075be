package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateReceiptNumber builds a human-facing receipt identifier for a
// completed payment: "REC-<unix-millis>-<6-hex>". The random suffix keeps
// receipts unique when two payments complete in the same millisecond.
func GenerateReceiptNumber(now time.Time) string {
	suffix := make([]byte, 3)
	_, _ = rand.Read(suffix)

	return fmt.Sprintf("REC-%d-%s", now.UnixMilli(), hex.EncodeToString(suffix))
}

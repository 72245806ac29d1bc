package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identifier format: prefix + millisecond timestamp + random suffix. The
// timestamp keeps ids roughly ordered; the suffix covers rapid concurrent
// calls inside the same millisecond.

func NewOrderId() string {
	return fmt.Sprintf("ORDER%d%s", time.Now().UnixMilli(), randomSuffix(6))
}

func NewPaymentId() string {
	return fmt.Sprintf("PAY%d%s", time.Now().UnixMilli(), randomSuffix(6))
}

func randomSuffix(n int) string {
	s := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return s[:n]
}

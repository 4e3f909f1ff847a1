package analytics

import (
	"fmt"
	"os"
	"time"
)

// NewConsumerID names this process within the search-trend consumer
// group. Host and pid identify the worker; the nano suffix keeps
// restarts from colliding with a dead consumer's pending entries.
func NewConsumerID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "trend-worker"
	}
	return fmt.Sprintf("%s-%d-%d", host, os.Getpid(), time.Now().UnixNano())
}

package domain

import (
	"context"
	"time"
)

// RawMessage is an unprocessed message from the plan-request stream.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputMessage is the serialized form destined for the weekly-plan stream.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

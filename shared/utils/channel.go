// Package utils holds small, dependency-free helpers shared by the
// per-side-locked linked-node data structures in shared/data_structures.
package utils

import (
	"reflect"
	"sync"
)

// channelCloseMutex serializes concurrent close attempts across all
// channels passed through SafeCloseChannel.
var channelCloseMutex sync.Mutex

// SafeCloseChannel closes ch (any channel type, via reflection) without
// panicking if it is nil, not a channel, or already closed. Used by Node's
// per-side lock helpers to release coordination channels that may already
// have been closed by a racing goroutine.
func SafeCloseChannel(ch interface{}) {
	if ch == nil {
		return
	}

	val := reflect.ValueOf(ch)
	if val.Kind() != reflect.Chan || val.IsNil() {
		return
	}

	channelCloseMutex.Lock()
	defer channelCloseMutex.Unlock()

	if !isChannelClosed(val) {
		val.Close()
	}
}

// isChannelClosed performs a non-blocking receive to detect whether ch is
// already closed. If a value is pending, that receive consumes it.
func isChannelClosed(ch reflect.Value) bool {
	if ch.Kind() != reflect.Chan {
		return true
	}

	chosen, _, ok := reflect.Select([]reflect.SelectCase{
		{Dir: reflect.SelectRecv, Chan: ch},
		{Dir: reflect.SelectDefault},
	})

	return chosen == 0 && !ok
}

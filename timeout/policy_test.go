// Copyright 2026 The ya-fetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/exah/ya-fetch/request"
	"github.com/stretchr/testify/assert"
)

func TestInfinite(t *testing.T) {
	assert.Equal(t, time.Duration(0), Infinite.Timeout(&request.Execution{}))

	afterTimeouts := &request.Execution{AttemptTimeouts: 10, Err: syscall.ETIMEDOUT}
	assert.Equal(t, time.Duration(0), Infinite.Timeout(afterTimeouts))
}

func TestFixed(t *testing.T) {
	p := Fixed(750 * time.Millisecond)

	executions := []*request.Execution{
		{},
		{Attempt: 1, AttemptTimeouts: 1, Err: syscall.ETIMEDOUT},
		{Attempt: 5, AttemptTimeouts: 2, Err: syscall.ECONNRESET},
	}
	for _, e := range executions {
		assert.Equal(t, 750*time.Millisecond, p.Timeout(e))
	}
}

func TestAdaptive(t *testing.T) {
	p := Adaptive(5*time.Millisecond, 10*time.Millisecond, 100*time.Millisecond)

	testCases := []struct {
		name string
		e    *request.Execution
		want time.Duration
	}{
		{
			name: "initial attempt uses the usual timeout",
			e:    &request.Execution{},
			want: 5 * time.Millisecond,
		},
		{
			name: "first timeout widens to after[0]",
			e:    &request.Execution{AttemptTimeouts: 1, Err: syscall.ETIMEDOUT},
			want: 10 * time.Millisecond,
		},
		{
			name: "non-timeout failure reverts to the usual timeout",
			e:    &request.Execution{Attempt: 1, AttemptTimeouts: 1, Err: errors.New("just a routine problem")},
			want: 5 * time.Millisecond,
		},
		{
			name: "second timeout widens to after[1]",
			e:    &request.Execution{Attempt: 2, AttemptTimeouts: 2, Err: syscall.ETIMEDOUT},
			want: 100 * time.Millisecond,
		},
		{
			name: "later timeouts stick with the last element",
			e:    &request.Execution{Attempt: 4, AttemptTimeouts: 3, Err: syscall.ETIMEDOUT},
			want: 100 * time.Millisecond,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, p.Timeout(testCase.e))
		})
	}
}

func TestAdaptiveSingleTimeout(t *testing.T) {
	p := Adaptive(time.Second)

	assert.Equal(t, time.Second, p.Timeout(&request.Execution{}))
	assert.Equal(t, time.Second, p.Timeout(&request.Execution{AttemptTimeouts: 2, Err: syscall.ETIMEDOUT}))
}

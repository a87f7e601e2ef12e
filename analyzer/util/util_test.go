package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingPass struct {
	mutex *sync.Mutex
	name  string
	trace *[]string
}

func (pass recordingPass) Process(prefix string) {
	pass.mutex.Lock()
	defer pass.mutex.Unlock()
	*pass.trace = append(*pass.trace, prefix+pass.name)
}

func TestProcessRunsStagesInOrder(t *testing.T) {
	mutex := &sync.Mutex{}
	trace := []string{}
	newPass := func(name string) Pass[string] {
		return recordingPass{mutex: mutex, name: name, trace: &trace}
	}

	Process(
		"x.",
		[][]Pass[string]{
			{newPass("a"), newPass("b")},
			{newPass("c")},
		},
		nil)

	assert.Len(t, trace, 3)
	assert.ElementsMatch(t, []string{"x.a", "x.b"}, trace[:2])
	assert.Equal(t, "x.c", trace[2])
}

func TestProcessEarlyExit(t *testing.T) {
	mutex := &sync.Mutex{}
	trace := []string{}
	newPass := func(name string) Pass[string] {
		return recordingPass{mutex: mutex, name: name, trace: &trace}
	}

	Process(
		"",
		[][]Pass[string]{{newPass("a")}, {newPass("b")}},
		func() bool { return true })

	assert.Equal(t, []string{"a"}, trace)
}

func TestParallelProcess(t *testing.T) {
	results := make([]int, 5)
	ParallelProcess(
		[]int{0, 1, 2, 3, 4},
		func(idx int) {
			results[idx] = idx * idx
		})

	assert.Equal(t, []int{0, 1, 4, 9, 16}, results)
}

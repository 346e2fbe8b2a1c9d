package main

import (
	"sort"
	"strconv"
)

// ErrorMap aggregates captured error messages by frequency over a
// benchmark run. Execution is strictly sequential, so no locking is
// needed.
type ErrorMap struct {
	m map[string]uint64
}

func NewErrorMap() *ErrorMap {
	em := new(ErrorMap)
	em.m = make(map[string]uint64)
	return em
}

func (e *ErrorMap) Add(msg string) {
	e.m[msg]++
}

func (e *ErrorMap) Get(msg string) uint64 {
	return e.m[msg]
}

func (e *ErrorMap) Sum() uint64 {
	sum := uint64(0)
	for _, v := range e.m {
		sum += v
	}
	return sum
}

type errorWithCount struct {
	error string
	count uint64
}

func (ewc *errorWithCount) String() string {
	return "<" + ewc.error + ":" +
		strconv.FormatUint(ewc.count, decBase) + ">"
}

// ByFrequency returns the recorded errors, most frequent first. Ties
// are broken alphabetically to keep the output stable.
func (e *ErrorMap) ByFrequency() []*errorWithCount {
	byFreq := make([]*errorWithCount, 0, len(e.m))
	for msg, count := range e.m {
		byFreq = append(byFreq, &errorWithCount{msg, count})
	}
	sort.Slice(byFreq, func(i, j int) bool {
		if byFreq[i].count != byFreq[j].count {
			return byFreq[i].count > byFreq[j].count
		}
		return byFreq[i].error < byFreq[j].error
	})
	return byFreq
}

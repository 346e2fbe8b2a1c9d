package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	nilStr  = "nil"
	decBase = 10
)

type nullableUint64 struct {
	val *uint64
}

func (n *nullableUint64) String() string {
	if n.val == nil {
		return nilStr
	}
	return strconv.FormatUint(*n.val, decBase)
}

func (n *nullableUint64) Set(value string) error {
	res, err := strconv.ParseUint(value, decBase, 64)
	if err != nil {
		return err
	}
	n.val = &res
	return nil
}

type nullableFloat64 struct {
	val *float64
}

func (n *nullableFloat64) String() string {
	if n.val == nil {
		return nilStr
	}
	return strconv.FormatFloat(*n.val, 'f', -1, 64)
}

func (n *nullableFloat64) Set(value string) error {
	res, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	n.val = &res
	return nil
}

// headersList accumulates repeated -H "Key: Value" flags.
type headersList []header

type header struct {
	key, value string
}

func (h *headersList) String() string {
	var sb strings.Builder
	for i, hdr := range *h {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(hdr.key)
		sb.WriteString(": ")
		sb.WriteString(hdr.value)
	}
	return sb.String()
}

func (h *headersList) Set(value string) error {
	idx := strings.Index(value, ":")
	if idx < 1 {
		return fmt.Errorf("header %q must be in 'Key: Value' form", value)
	}
	*h = append(*h, header{
		key:   strings.TrimSpace(value[:idx]),
		value: strings.TrimSpace(value[idx+1:]),
	})
	return nil
}

func (h *headersList) IsCumulative() bool {
	return true
}

// Map flattens the list for the request model; later values win.
func (h *headersList) Map() map[string]string {
	m := make(map[string]string, len(*h))
	for _, hdr := range *h {
		m[hdr.key] = hdr.value
	}
	return m
}

func (h *headersList) Sorted() []header {
	out := make([]header, len(*h))
	copy(out, *h)
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

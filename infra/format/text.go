package format

import (
	"fmt"
	"reflect"
	"strings"
)

// NewTextFormatter returns formatter printing one element of slice per line
func NewTextFormatter() Formatter {
	return &textFormatter{}
}

type textFormatter struct {
}

// Format formats slice into lines, elements implementing fmt.Stringer are printed using String method
func (f *textFormatter) Format(slice interface{}) string {
	sliceValue := reflect.ValueOf(slice)
	lines := make([]string, 0, sliceValue.Len())
	for i := 0; i < sliceValue.Len(); i++ {
		lines = append(lines, fmt.Sprint(sliceValue.Index(i).Interface()))
	}
	return strings.Join(lines, "\n")
}

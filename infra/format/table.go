package format

import (
	"fmt"
	"reflect"
	"strings"
)

// NewTableFormatter returns formatter converting slice into table string
func NewTableFormatter() Formatter {
	return &tableFormatter{}
}

type tableFormatter struct {
}

// Format formats slice of structs into table string
func (f *tableFormatter) Format(slice interface{}) string {
	sliceValue := reflect.ValueOf(slice)
	elementType := sliceValue.Type().Elem()

	fields := make([]reflect.StructField, 0, elementType.NumField())
	for i := 0; i < elementType.NumField(); i++ {
		field := elementType.Field(i)
		if field.Anonymous || !field.IsExported() {
			continue
		}
		fields = append(fields, field)
	}

	lens := make([]int, len(fields))

	header := make([]string, 0, len(fields))
	for i, field := range fields {
		header = append(header, strings.ToUpper(field.Name))
		lens[i] = len(field.Name)
	}
	table := [][]string{header}
	for i := 0; i < sliceValue.Len(); i++ {
		row := make([]string, 0, len(fields))
		elem := sliceValue.Index(i)
		for j, field := range fields {
			strValue := cell(elem.FieldByIndex(field.Index))
			row = append(row, strValue)
			if len(strValue) > lens[j] {
				lens[j] = len(strValue)
			}
		}
		table = append(table, row)
	}

	var sb strings.Builder
	for i, row := range table {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, c := range row {
			fmt.Fprintf(&sb, ` %-*s `, lens[j], c)
		}
	}
	return sb.String()
}

func cell(value reflect.Value) string {
	if value.Kind() == reflect.Slice && value.Type().Elem().Kind() == reflect.String {
		items := make([]string, 0, value.Len())
		for i := 0; i < value.Len(); i++ {
			items = append(items, value.Index(i).String())
		}
		return strings.Join(items, " ")
	}
	return fmt.Sprintf("%v", value.Interface())
}

package tui

import (
	"strconv"
	"strings"
)

func parsePercent(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	val, _ := strconv.ParseFloat(s, 64)
	return val
}

// parseResources reads the memory part of "100MB/50%"
func parseResources(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "─" {
		return 0
	}
	mem, _, _ := strings.Cut(s, "/")
	return parseSize(mem)
}

// parseUptime turns "HH:MM:SS" (or "MM:SS") into seconds
func parseUptime(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0
	}
	total := 0
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

func parseSize(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// remove possible commas
	s = strings.ReplaceAll(s, ",", "")
	// split number and unit
	num := ""
	unit := ""
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			num += string(r)
		} else {
			unit = strings.TrimSpace(s[i:])
			break
		}
	}
	if num == "" {
		return 0
	}
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(unit) {
	case "b", "bytes", "byte", "":
		return val
	case "k", "kb", "kib":
		return val * 1000
	case "m", "mb", "mib":
		return val * 1000 * 1000
	case "g", "gb", "gib":
		return val * 1000 * 1000 * 1000
	}
	return val
}

// splitList parses "a, b,c" into trimmed non-empty items
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseEnv parses "KEY=VAL, KEY2=VAL2"
func parseEnv(s string) (map[string]string, error) {
	items := splitList(s)
	if len(items) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(items))
	for _, item := range items {
		k, v, ok := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, &formError{field: "env", msg: "expected KEY=VALUE, got " + strconv.Quote(item)}
		}
		env[k] = strings.TrimSpace(v)
	}
	return env, nil
}

// parseLimit parses an optional non-negative integer field
func parseLimit(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &formError{field: field, msg: "must be a whole number, got " + strconv.Quote(s)}
	}
	return n, nil
}

type formError struct {
	field string
	msg   string
}

func (e *formError) Error() string {
	return e.field + ": " + e.msg
}

package utils

import "strings"

// ToStringSlice keeps the string elements of slice. A nil input stays nil so
// callers can tell an absent list from an empty one.
func ToStringSlice(slice []any) []string {
	if slice == nil {
		return nil
	}
	stringSlice := make([]string, 0, len(slice))
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// SplitRoles splits a comma separated role list, dropping blanks.
func SplitRoles(csv string) []string {
	var roles []string
	for _, r := range strings.Split(csv, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// CloneStrings copies s, preserving nil.
func CloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

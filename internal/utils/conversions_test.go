package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/stretchr/testify/require"
)

// TestToStringSlice_KeepsNil checks nil stays nil and non strings are dropped
func TestToStringSlice_KeepsNil(t *testing.T) {
	require.Nil(t, utils.ToStringSlice(nil))
	require.Equal(t, []string{}, utils.ToStringSlice([]any{}))
	require.Equal(t, []string{"a", "b"}, utils.ToStringSlice([]any{"a", 1, "b", nil}))
}

// TestSplitRoles trims whitespace and drops empty entries
func TestSplitRoles(t *testing.T) {
	require.Equal(t, []string{"admin", "ops"}, utils.SplitRoles(" admin, ,ops,"))
	require.Nil(t, utils.SplitRoles(""))
	require.Nil(t, utils.SplitRoles(" , "))
}

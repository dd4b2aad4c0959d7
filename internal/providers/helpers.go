package providers

import (
	"github.com/folderguard/folderguard/internal/types"
)

// success builds a successful result
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// failure builds a failed result with a message
func failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// stringParam extracts a required non-empty string parameter
func stringParam(params map[string]interface{}, name string) (string, bool) {
	v, ok := params[name].(string)
	return v, ok && v != ""
}

package executor

import "fmt"

// MergeEnv overlays extra variables onto a base environment in KEY=VALUE
// form. Extras win over base entries with the same key; order of the base
// environment is preserved.
func MergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}

	overridden := make(map[string]bool, len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		replaced := false
		for k, v := range extra {
			if len(kv) > len(k) && kv[:len(k)] == k && kv[len(k)] == '=' {
				merged = append(merged, fmt.Sprintf("%s=%s", k, v))
				overridden[k] = true
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, kv)
		}
	}
	for k, v := range extra {
		if !overridden[k] {
			merged = append(merged, fmt.Sprintf("%s=%s", k, v))
		}
	}
	return merged
}

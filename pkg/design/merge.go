// merge.go — Generic deep merge for JSON-shaped design patches.
//
// The HTTP layer receives incremental edits as raw JSON objects; Merge
// folds such a patch onto a base object without knowing the schema.
package design

import (
	"encoding/json"
	"fmt"
)

// Merge deep-merges override onto base and returns a new map. Neither
// input is mutated. When both sides hold a JSON object at the same key
// the objects merge recursively; any other conflict is won by the
// override, including arrays, which are replaced wholesale rather than
// merged element-wise.
func Merge(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = deepCopyValue(v)
	}

	for k, ov := range override {
		bm, baseIsMap := out[k].(map[string]any)
		om, overIsMap := ov.(map[string]any)
		if baseIsMap && overIsMap {
			out[k] = Merge(bm, om)
			continue
		}
		out[k] = deepCopyValue(ov)
	}

	return out
}

// ApplyPatch folds a schemaless JSON patch onto base and returns the
// resulting Settings. Unknown keys in the patch are dropped by the final
// decode; known keys follow the same replace/recurse policy as Merge.
func ApplyPatch(base Settings, patch map[string]any) (Settings, error) {
	if len(patch) == 0 {
		return base, nil
	}

	raw, err := json.Marshal(base)
	if err != nil {
		return Settings{}, fmt.Errorf("marshal base settings: %w", err)
	}
	var baseMap map[string]any
	if err := json.Unmarshal(raw, &baseMap); err != nil {
		return Settings{}, fmt.Errorf("decode base settings: %w", err)
	}

	merged, err := json.Marshal(Merge(baseMap, patch))
	if err != nil {
		return Settings{}, fmt.Errorf("marshal merged settings: %w", err)
	}

	out := base
	if err := json.Unmarshal(merged, &out); err != nil {
		return Settings{}, fmt.Errorf("apply design patch: %w", err)
	}
	return out, nil
}

// deepCopyValue copies nested maps and slices so the merged result shares
// no mutable structure with its inputs. Scalars are returned as-is.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = deepCopyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}

package endpoint

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// maxIndex bounds the list indexes accepted in parameter names
const maxIndex = 1000

// positionalKeys are the lists where the index of an item is meaningful, gaps
// are kept as empty items instead of being compacted.
var positionalKeys = map[string]bool{"columns": true}

var keyReplacer = strings.NewReplacer("][", ".", "[", ".", "]", "")

// parseParams turns flat form parameters into the nested structure they
// describe. Both the bracket notation sent by jQuery ("order[0][column]") and
// dotted names ("order.0.column") are accepted. Maps keyed by indexes become
// lists.
func parseParams(values url.Values) map[string]interface{} {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	root := make(map[string]interface{})
	for _, key := range keys {
		segments, ok := splitKey(key)
		if !ok {
			continue
		}
		v := values[key]
		if len(v) == 0 {
			continue
		}
		setPath(root, segments, v[len(v)-1])
	}

	return normalize(root, false).(map[string]interface{})
}

func splitKey(key string) ([]string, bool) {
	segments := strings.Split(keyReplacer.Replace(key), ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, false
		}
	}
	return segments, true
}

func setPath(root map[string]interface{}, segments []string, value string) {
	node := root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			node[segment] = child
		}
		node = child
	}
	last := segments[len(segments)-1]
	if _, isMap := node[last].(map[string]interface{}); !isMap {
		node[last] = value
	}
}

func normalize(value interface{}, positional bool) interface{} {
	m, ok := value.(map[string]interface{})
	if !ok {
		return value
	}

	for key, child := range m {
		m[key] = normalize(child, positionalKeys[key])
	}

	indexes, ok := indexKeys(m)
	if !ok {
		return m
	}

	if !positional {
		list := make([]interface{}, 0, len(indexes))
		for _, i := range indexes {
			list = append(list, m[strconv.Itoa(i)])
		}
		return list
	}

	list := make([]interface{}, indexes[len(indexes)-1]+1)
	for i := range list {
		if item, ok := m[strconv.Itoa(i)]; ok {
			list[i] = item
		} else {
			list[i] = make(map[string]interface{})
		}
	}
	return list
}

// indexKeys returns the sorted indexes when every key of the map is one
func indexKeys(m map[string]interface{}) ([]int, bool) {
	if len(m) == 0 {
		return nil, false
	}
	indexes := make([]int, 0, len(m))
	for key := range m {
		i, err := strconv.Atoi(key)
		if err != nil || i < 0 || i > maxIndex || strconv.Itoa(i) != key {
			return nil, false
		}
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes, true
}

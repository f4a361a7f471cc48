package source

import (
	"context"
	"fmt"
	"io/ioutil"

	"github.com/datastax/cassandra-datatables/datatables"
	"gopkg.in/yaml.v2"
)

// FileSource reads records from a JSON or YAML document. The document is either
// a list of objects or an object with a "data" list, the DataTables fixture
// layout. Key order of the objects is kept.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(ctx context.Context) ([]datatables.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := ioutil.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	records, err := ParseRecords(content)
	if err != nil {
		return nil, fmt.Errorf("unable to parse '%s': %s", s.path, err)
	}
	return records, nil
}

// ParseRecords decodes a JSON or YAML document into records
func ParseRecords(content []byte) ([]datatables.Record, error) {
	var list []interface{}

	var items []yaml.MapSlice
	if err := yaml.Unmarshal(content, &items); err == nil {
		for _, item := range items {
			list = append(list, item)
		}
	} else {
		var document yaml.MapSlice
		if err := yaml.Unmarshal(content, &document); err != nil {
			return nil, err
		}

		data, ok := lookup(document, "data")
		if !ok {
			return nil, fmt.Errorf("document has no data list")
		}
		if list, ok = data.([]interface{}); !ok {
			return nil, fmt.Errorf("data should be a list, found %T", data)
		}
	}

	records := make([]datatables.Record, 0, len(list))
	for i, item := range list {
		value := toRecordValue(item)
		row, ok := value.(*datatables.Row)
		if !ok {
			return nil, fmt.Errorf("item %d should be an object, found %T", i, item)
		}
		records = append(records, row)
	}
	return records, nil
}

func lookup(document yaml.MapSlice, key string) (interface{}, bool) {
	for _, item := range document {
		if fmt.Sprint(item.Key) == key {
			return item.Value, true
		}
	}
	return nil, false
}

// toRecordValue converts decoded YAML into rows, ordered mappings become rows
// and lists are converted element by element.
func toRecordValue(value interface{}) interface{} {
	switch v := value.(type) {
	case yaml.MapSlice:
		row := datatables.NewRow()
		for _, item := range v {
			row.Set(fmt.Sprint(item.Key), toRecordValue(item.Value))
		}
		return row
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for key, item := range v {
			m[fmt.Sprint(key)] = toRecordValue(item)
		}
		return datatables.RowFromMap(m)
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = toRecordValue(item)
		}
		return items
	}
	return value
}

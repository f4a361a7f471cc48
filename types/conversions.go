package types

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/gocql/gocql"
)

type toRecordFn func(value interface{}) interface{}

// ToRecordValue converts a scanned CQL value into the value stored in a record.
// Most values are kept as scanned, blobs and times get their CQL text form so
// they can be searched.
func ToRecordValue(value interface{}, typeInfo gocql.TypeInfo) interface{} {
	if value == nil {
		return nil
	}
	return converterPerType(typeInfo)(value)
}

func converterPerType(typeInfo gocql.TypeInfo) toRecordFn {
	switch typeInfo.Type() {
	case gocql.TypeBlob:
		return ByteArrayToBase64String
	case gocql.TypeTime:
		return DurationToCqlFormattedString
	case gocql.TypeTimestamp:
		return TimeToUTC
	case gocql.TypeDate:
		return TimeToDate
	}

	return identityFn
}

func identityFn(value interface{}) interface{} {
	return value
}

func ByteArrayToBase64String(value interface{}) interface{} {
	switch value := value.(type) {
	case []byte:
		return base64.StdEncoding.EncodeToString(value)
	case *[]byte:
		if value == nil {
			return nil
		}
		return base64.StdEncoding.EncodeToString(*value)
	default:
		return value
	}
}

func TimeToUTC(value interface{}) interface{} {
	switch value := value.(type) {
	case time.Time:
		return value.UTC()
	default:
		return value
	}
}

// TimeToDate renders a CQL date as yyyy-mm-dd
func TimeToDate(value interface{}) interface{} {
	switch value := value.(type) {
	case time.Time:
		return value.UTC().Format("2006-01-02")
	default:
		return value
	}
}

func DurationToCqlFormattedString(value interface{}) interface{} {
	var d time.Duration
	switch value := value.(type) {
	case time.Duration:
		d = value
	case *time.Duration:
		if value == nil {
			return nil
		}
		d = *value
	default:
		return value
	}

	totalSeconds := d.Truncate(time.Second)
	remainingNanos := d - totalSeconds

	var (
		hours   = 0
		minutes = 0
	)
	secs := int(totalSeconds.Seconds())

	if secs >= 60 {
		minutes = secs / 60
		secs = secs % 60
	}
	if minutes >= 60 {
		hours = minutes / 60
		minutes = minutes % 60
	}

	nanosStr := ""
	if remainingNanos > 0 {
		nanosStr = fmt.Sprintf(".%09d", remainingNanos.Nanoseconds())
	}
	return fmt.Sprintf("%02d:%02d:%02d%s", hours, minutes, secs, nanosStr)
}

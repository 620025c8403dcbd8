package model

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

const (
	dateLayout         = "2006-01-02"
	dateTimeZoneLayout = "2006-01-02T15:04:05Z"
)

// Date is a calendar date (no time component). JSON uses yyyy-MM-dd. Stored
// records exist in two historic encodings, a date string or a native BSON
// datetime, so the read side accepts both; writes always emit the string form.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) *Date {
	return &Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(dateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(d.UTC().Format(dateLayout))
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.String:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("malformed BSON string for date")
		}
		parsed, err := parseDate(s)
		if err != nil {
			return err
		}
		d.Time = parsed
		return nil
	case bsontype.DateTime:
		ms, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return fmt.Errorf("malformed BSON datetime for date")
		}
		d.Time = time.UnixMilli(ms).UTC()
		return nil
	case bsontype.Null:
		d.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot decode BSON %s into date", t)
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(dateTimeZoneLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

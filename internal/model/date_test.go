package model

import (
	"encoding/json"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2022, time.November, 3)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2022-11-03"` {
		t.Fatalf("marshal = %s", b)
	}

	var back Date
	if err := json.Unmarshal([]byte(`"2022-11-03"`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip: %v want %v", back.Time, d.Time)
	}

	// Some feeds send the zoned datetime form.
	if err := json.Unmarshal([]byte(`"2022-11-03T00:00:00Z"`), &back); err != nil {
		t.Fatalf("unmarshal datetime form: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("datetime form: %v want %v", back.Time, d.Time)
	}

	if err := json.Unmarshal([]byte(`"03/11/2022"`), &back); err == nil {
		t.Fatal("expected error for unknown date format")
	}
}

func TestDateBSONReadsBothEncodings(t *testing.T) {
	want := time.Date(2022, time.November, 3, 0, 0, 0, 0, time.UTC)

	var fromString Date
	strVal := bsoncore.AppendString(nil, "2022-11-03")
	if err := fromString.UnmarshalBSONValue(bsontype.String, strVal); err != nil {
		t.Fatalf("string decode: %v", err)
	}
	if !fromString.Equal(want) {
		t.Fatalf("string decode = %v", fromString.Time)
	}

	var fromDateTime Date
	dtVal := bsoncore.AppendDateTime(nil, want.UnixMilli())
	if err := fromDateTime.UnmarshalBSONValue(bsontype.DateTime, dtVal); err != nil {
		t.Fatalf("datetime decode: %v", err)
	}
	if !fromDateTime.Equal(want) {
		t.Fatalf("datetime decode = %v", fromDateTime.Time)
	}

	var fromNull Date
	if err := fromNull.UnmarshalBSONValue(bsontype.Null, nil); err != nil {
		t.Fatalf("null decode: %v", err)
	}
	if !fromNull.IsZero() {
		t.Fatalf("null decode = %v, want zero", fromNull.Time)
	}
}

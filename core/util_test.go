package core

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestCleanString(t *testing.T) {
	if got := CleanString("  Ada@Example.COM \n", true); got != "ada@example.com" {
		t.Errorf("CleanString(lower) = %q", got)
	}
	if got := CleanString("  Ada "); got != "Ada" {
		t.Errorf("CleanString() = %q", got)
	}
}

func TestCleanStrings(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: []string{}},
		{name: "blanks and duplicates", in: []string{" Python", "", "Python ", "MongoDB", "  "}, want: []string{"Python", "MongoDB"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanStrings(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanStrings() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNow(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	restore := SetNowFunc(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 678901234, loc) })
	defer restore()

	got := Now()
	want := time.Date(2024, 1, 2, 0, 4, 5, 678000000, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestParseID(t *testing.T) {
	id := NewID()

	got, err := ParseID("userId", "  "+id+" ")
	if err != nil || got != id {
		t.Errorf("ParseID(%q) = %q, %v", id, got, err)
	}

	got, err = ParseID("userId", strings.ToUpper(id))
	if err != nil || got != id {
		t.Errorf("ParseID(%q) = %q, %v", strings.ToUpper(id), got, err)
	}

	for _, in := range []string{"", "42", "not-a-uuid", "{" + id + "}", "urn:uuid:" + id, strings.ReplaceAll(id, "-", "")} {
		if _, err := ParseID("userId", in); !IsValidation(err) {
			t.Errorf("ParseID(%q) error = %v, want a validation error", in, err)
		}
	}
}

func TestSeedResult(t *testing.T) {
	res := SeedResult{Entity: "users"}
	res.Record(nil)
	res.Record(&DuplicateKeyError{Collection: "users", Index: "email_1"})
	res.Record(nil)

	if res.Attempted != 3 || res.Inserted != 2 || res.Failed() != 1 {
		t.Errorf("SeedResult = %+v", res)
	}
	if want := "users: inserted 2 of 3 (1 failed)"; res.String() != want {
		t.Errorf("SeedResult.String() = %q, want %q", res.String(), want)
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(2.25, 1); got != 2.3 {
		t.Errorf("RoundTo(2.25, 1) = %v, want 2.3", got)
	}
	if got := RoundTo(49.994, 2); got != 49.99 {
		t.Errorf("RoundTo(49.994, 2) = %v, want 49.99", got)
	}
}

package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func Test_AnalysisResult_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   AnalysisResult
	}{
		{"structured purpose only", NewStructured(StructuredAnalysis{Purpose: "entry"})},
		{"structured full", NewStructured(StructuredAnalysis{Purpose: "entry", Components: "main", Quality: "good"})},
		{"raw", NewRaw("This file starts the server.")},
		{"raw empty", NewRaw("")},
		{"failed", NewFailed("external service error")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(b), `"kind":"`+string(tt.in.Kind())+`"`) {
				t.Fatalf("missing kind: %s", b)
			}
			var got AnalysisResult
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.in) {
				t.Fatalf("round trip %s: got %+v, want %+v", b, got, tt.in)
			}
		})
	}
}

func Test_AnalysisResult_UnmarshalWithoutKind(t *testing.T) {
	tests := []struct {
		data string
		kind ResultKind
	}{
		{`{"purpose": "entry"}`, ResultRaw},
		{`{"error": "boom"}`, ResultFailed},
		{`{"purpose": "entry", "logic": "loops"}`, ResultStructured},
	}
	for _, tt := range tests {
		var r AnalysisResult
		if err := json.Unmarshal([]byte(tt.data), &r); err != nil {
			t.Fatalf("%s: %v", tt.data, err)
		}
		if r.Kind() != tt.kind {
			t.Fatalf("%s: got %s, want %s", tt.data, r.Kind(), tt.kind)
		}
	}

	var r AnalysisResult
	if err := json.Unmarshal([]byte(`{"kind": "other"}`), &r); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

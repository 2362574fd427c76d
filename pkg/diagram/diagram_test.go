package diagram

import (
	"encoding/json"
	"strings"
	"testing"

	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input  string
		want   Kind
		wantOK bool
	}{
		{"UML", KindClass, true},
		{"class", KindClass, true},
		{" ClassDiagram ", KindClass, true},
		{"Flowchart", KindFlowchart, true},
		{"flow", KindFlowchart, true},
		{"DFD", KindDataFlow, true},
		{"data-flow", KindDataFlow, true},
		{"Gantt", Kind("Gantt"), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseKind(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseKind(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestKindSlug(t *testing.T) {
	if KindClass.Slug() != "uml" || KindFlowchart.Slug() != "flowchart" || KindDataFlow.Slug() != "dfd" {
		t.Error("unexpected slug for a supported kind")
	}
	if Kind("Gantt").Slug() != "gantt" {
		t.Errorf("Slug() = %q, want %q", Kind("Gantt").Slug(), "gantt")
	}
}

func TestEntityUnmarshal(t *testing.T) {
	var d DataFlowDiagram
	input := `{"entities": ["User", {"name": "System"}], "data_flows": []}`
	if err := json.Unmarshal([]byte(input), &d); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(d.Entities) != 2 {
		t.Fatalf("got %d entities, want 2", len(d.Entities))
	}
	if d.Entities[0].Name != "User" || d.Entities[1].Name != "System" {
		t.Errorf("entities = %+v", d.Entities)
	}
}

func TestEntityUnmarshalInvalid(t *testing.T) {
	var e Entity
	if err := json.Unmarshal([]byte(`42`), &e); err == nil {
		t.Error("expected error for numeric entity")
	}
}

func TestSetPayload(t *testing.T) {
	s := Set{Flowchart: &Flowchart{}}

	if _, ok := s.Payload(KindClass); ok {
		t.Error("nil UML should not be present")
	}
	p, ok := s.Payload(KindFlowchart)
	if !ok {
		t.Fatal("Flowchart should be present")
	}
	if _, isFlow := p.(*Flowchart); !isFlow {
		t.Errorf("Payload type = %T, want *Flowchart", p)
	}
	if _, ok := s.Payload(Kind("Gantt")); ok {
		t.Error("unsupported kind should not be present")
	}

	kinds := s.Kinds()
	if len(kinds) != 1 || kinds[0] != KindFlowchart {
		t.Errorf("Kinds() = %v, want [Flowchart]", kinds)
	}
}

func TestReadSetBare(t *testing.T) {
	input := `{"UML": {"classes": [{"name": "User", "attributes": ["id"]}]}}`
	s, title, err := ReadSet(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSet error: %v", err)
	}
	if title != "" {
		t.Errorf("title = %q, want empty", title)
	}
	if s.UML == nil || len(s.UML.Classes) != 1 || s.UML.Classes[0].Name != "User" {
		t.Errorf("unexpected UML: %+v", s.UML)
	}
}

func TestReadSetEnvelope(t *testing.T) {
	input := `{
	  "project_title": "Quiz App",
	  "diagrams": {
	    "DFD": {"entities": [{"name": "User"}], "data_flows": [{"source": "User", "destination": "System", "data": "Answers"}]}
	  }
	}`
	s, title, err := ReadSet(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadSet error: %v", err)
	}
	if title != "Quiz App" {
		t.Errorf("title = %q, want %q", title, "Quiz App")
	}
	if s.DFD == nil || len(s.DFD.DataFlows) != 1 {
		t.Fatalf("unexpected DFD: %+v", s.DFD)
	}
}

func TestReadSetErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"UML": `},
		{"array", `[]`},
		{"empty object", `{}`},
		{"empty envelope", `{"diagrams": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadSet(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, apperrors.ErrCodeInvalidPayload) {
				t.Errorf("code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidPayload)
			}
		})
	}
}

func TestImportSetMissingFile(t *testing.T) {
	_, _, err := ImportSet("does-not-exist.json")
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeFileNotFound)
	}
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload(KindFlowchart, []byte(`{"elements": [{"id": "a", "type": "process", "text": "A"}]}`))
	if err != nil {
		t.Fatalf("DecodePayload error: %v", err)
	}
	f, ok := p.(*Flowchart)
	if !ok || len(f.Elements) != 1 {
		t.Fatalf("unexpected payload: %#v", p)
	}

	if _, err := DecodePayload(Kind("Gantt"), []byte(`{}`)); !apperrors.Is(err, apperrors.ErrCodeInvalidKind) {
		t.Errorf("unsupported kind error code = %v", apperrors.GetCode(err))
	}
	if _, err := DecodePayload(KindClass, []byte(`{"classes": 1}`)); !apperrors.Is(err, apperrors.ErrCodeInvalidPayload) {
		t.Errorf("bad payload error code = %v", apperrors.GetCode(err))
	}
}

func TestDiagnosticString(t *testing.T) {
	d := Unresolved("connection", "a", "b")
	if got := d.String(); got != "unresolved_reference: invalid connection (a -> b)" {
		t.Errorf("String() = %q", got)
	}
	d = Diagnostic{Code: DiagUnsupported, Message: "unsupported diagram type: Gantt"}
	if got := d.String(); got != "unsupported_kind: unsupported diagram type: Gantt" {
		t.Errorf("String() = %q", got)
	}
}

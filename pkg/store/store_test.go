package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

func sampleDoc(title string) *diagram.Document {
	return &diagram.Document{
		ProjectTitle: title,
		Diagrams: diagram.Set{
			UML: &diagram.ClassDiagram{
				Classes: []diagram.Class{{Name: "User", Attributes: []string{"id"}}},
			},
			DFD: &diagram.DataFlowDiagram{
				Entities: []diagram.Entity{{Name: "User"}},
			},
		},
	}
}

// exerciseStore runs the behaviour shared by every backend.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	doc := sampleDoc("Habit Tracker")
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if doc.ID == "" || doc.StoredAt.IsZero() {
		t.Fatalf("Put should fill ID and StoredAt: %+v", doc)
	}
	firstID := doc.ID

	got, err := s.Get(ctx, "Habit Tracker")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != firstID || got.Diagrams.UML == nil || got.Diagrams.UML.Classes[0].Name != "User" {
		t.Errorf("Get returned %+v", got)
	}

	// Replacing keeps the ID.
	repl := sampleDoc("Habit Tracker")
	repl.Diagrams.Flowchart = &diagram.Flowchart{}
	if err := s.Put(ctx, repl); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	if repl.ID != firstID {
		t.Errorf("replacement ID = %s, want %s", repl.ID, firstID)
	}

	if err := s.Put(ctx, sampleDoc("Budget App")); err != nil {
		t.Fatalf("Put second: %v", err)
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ProjectTitle != "Budget App" || list[1].ProjectTitle != "Habit Tracker" {
		t.Fatalf("List = %+v", list)
	}
	if len(list[1].Kinds) != 3 {
		t.Errorf("Kinds = %v, want all three", list[1].Kinds)
	}

	if err := s.Delete(ctx, "Budget App"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "Budget App"); !IsNotFound(err) {
		t.Errorf("Get after Delete: %v, want not found", err)
	}
	if err := s.Delete(ctx, "Budget App"); !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("second Delete: %v, want NOT_FOUND", err)
	}
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemoryIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	doc := sampleDoc("P")
	if err := s.Put(ctx, doc); err != nil {
		t.Fatal(err)
	}
	doc.Diagrams.UML.Classes[0].Name = "Mutated"

	got, _ := s.Get(ctx, "P")
	if got.Diagrams.UML.Classes[0].Name != "User" {
		t.Error("mutating the input should not change stored state")
	}
	got.Diagrams.UML.Classes[0].Name = "Mutated"
	again, _ := s.Get(ctx, "P")
	if again.Diagrams.UML.Classes[0].Name != "User" {
		t.Error("mutating a Get result should not change stored state")
	}
}

func TestMemoryStoredAt(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemory()
	s.now = func() time.Time { return fixed }

	doc := sampleDoc("P")
	if err := s.Put(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	if !doc.StoredAt.Equal(fixed) {
		t.Errorf("StoredAt = %v, want %v", doc.StoredAt, fixed)
	}
}

func TestPutValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  *diagram.Document
		code apperrors.Code
	}{
		{"nil", nil, apperrors.ErrCodeInvalidInput},
		{"empty title", &diagram.Document{Diagrams: sampleDoc("x").Diagrams}, apperrors.ErrCodeInvalidProject},
		{"slash title", &diagram.Document{ProjectTitle: "a/b", Diagrams: sampleDoc("x").Diagrams}, apperrors.ErrCodeInvalidProject},
		{"no diagrams", &diagram.Document{ProjectTitle: "ok"}, apperrors.ErrCodeInvalidPayload},
	}

	s := NewMemory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Put(context.Background(), tt.doc)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("Put() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestListEmpty(t *testing.T) {
	list, err := NewMemory().List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("List() = %#v, want empty non-nil slice", list)
	}
}

func TestNewMongoRequiresURI(t *testing.T) {
	_, err := NewMongo(context.Background(), MongoConfig{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidConfig) {
		t.Errorf("NewMongo() error = %v, want INVALID_CONFIG", err)
	}
}

func TestMongoConfigDefaults(t *testing.T) {
	cfg := MongoConfig{URI: "mongodb://localhost"}
	cfg.applyDefaults()
	if cfg.Database != DefaultDatabase || cfg.Collection != DefaultCollection || cfg.Timeout != 10*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
}

// TestMongo runs against a live server when PBL_TEST_MONGO_URI is set.
func TestMongo(t *testing.T) {
	uri := os.Getenv("PBL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PBL_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	coll := "projectDiagrams_test_" + time.Now().Format("150405")
	s, err := NewMongo(ctx, MongoConfig{URI: uri, Collection: coll})
	if err != nil {
		t.Fatalf("NewMongo: %v", err)
	}
	defer s.Close(ctx)
	defer s.coll.Drop(ctx)

	exerciseStore(t, s)
}
